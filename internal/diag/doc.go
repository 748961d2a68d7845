// Package diag collects the recoverable problems found while scanning and
// resolving [ooc] declarations. Nothing in here aborts a run: phases report
// into a Reporter and the driver decides what to print.
package diag
