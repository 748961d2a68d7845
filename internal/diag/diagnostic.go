package diag

import "fmt"

// Pos points at a line of an input file. Line is 1-based; zero means the
// position is unknown.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	switch {
	case p.File == "" && p.Line == 0:
		return "-"
	case p.Line == 0:
		return p.File
	case p.File == "":
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Diagnostic is a single recoverable problem attached to the line or entity
// it came from.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Pos
	Entity   string // type or member name, when the problem belongs to one
}

func (d Diagnostic) String() string {
	if d.Entity != "" {
		return fmt.Sprintf("%s: %s[%s]: %s: %s", d.Pos, d.Severity, d.Code, d.Entity, d.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Severity, d.Code, d.Message)
}
