package diag

import "fmt"

// Reporter receives diagnostics from the scanning and generation phases.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Reportf reports a diagnostic with the code's default severity.
func Reportf(r Reporter, code Code, pos Pos, entity, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{
		Severity: code.DefaultSeverity(),
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Entity:   entity,
	})
}
