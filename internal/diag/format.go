package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	posColor     = color.New(color.Bold)
)

// Format writes one line per diagnostic. When colored is false the output
// is plain text regardless of the terminal.
func Format(w io.Writer, items []Diagnostic, colored bool) error {
	for _, d := range items {
		if _, err := fmt.Fprintln(w, formatOne(d, colored)); err != nil {
			return err
		}
	}
	return nil
}

func formatOne(d Diagnostic, colored bool) string {
	if !colored {
		return d.String()
	}
	sev := severityColor(d.Severity)
	sev.EnableColor()
	posColor.EnableColor()
	head := sev.Sprintf("%s[%s]", d.Severity, d.Code)
	if d.Entity != "" {
		return fmt.Sprintf("%s: %s: %s: %s", posColor.Sprint(d.Pos), head, d.Entity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", posColor.Sprint(d.Pos), head, d.Message)
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return errorColor
	case SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
