package generator

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// lineBuf accumulates output lines. Indentation is chosen by the caller on
// every line; the buffer keeps no indentation state of its own.
type lineBuf struct {
	lines []string
}

func (b *lineBuf) line(indent int, s string) {
	if s == "" {
		b.lines = append(b.lines, "")
		return
	}
	b.lines = append(b.lines, strings.Repeat(indentUnit, indent)+s)
}

func (b *lineBuf) linef(indent int, format string, args ...any) {
	b.line(indent, fmt.Sprintf(format, args...))
}

func (b *lineBuf) blank() { b.lines = append(b.lines, "") }

func (b *lineBuf) appendLines(lines []string) { b.lines = append(b.lines, lines...) }

func (b *lineBuf) appendBuf(o *lineBuf) { b.lines = append(b.lines, o.lines...) }

func (b *lineBuf) bytes() []byte {
	if len(b.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(b.lines, "\n") + "\n")
}

// macro renders a parameterless #define whose body is one line per entry,
// continued with backslashes and closed by an empty line.
func (b *lineBuf) macro(name string, body []string) {
	b.linef(0, "#define %s() \\", name)
	for _, l := range body {
		b.linef(1, "%s \\", l)
	}
	b.blank()
}

func openGuard(b *lineBuf, variant string) {
	if variant != "" {
		b.linef(0, "#ifdef %s", variant)
	}
}

func closeGuard(b *lineBuf, variant string) {
	if variant != "" {
		b.linef(0, "#endif /* %s */", variant)
	}
}

// normalizeDecl rewrites a C type expression so that pointer markers stick
// to the token on their left: "char_u *text" becomes "char_u* text".
func normalizeDecl(decl string) string {
	toks := strings.Fields(strings.ReplaceAll(decl, "*", "* "))
	parts := make([]string, 0, len(toks))
	prev := ""
	for _, tok := range toks {
		if strings.HasPrefix(tok, "*") {
			prev += tok
			continue
		}
		if prev != "" {
			parts = append(parts, prev)
		}
		prev = tok
	}
	if prev != "" {
		parts = append(parts, prev)
	}
	return strings.Join(parts, " ")
}

// splitPointer strips trailing pointer markers from a normalized token.
func splitPointer(tok string) (string, int) {
	name := strings.TrimRight(tok, "*")
	return name, len(tok) - len(name)
}

// rewriteTypes replaces every token of expr that names a known type with
// rename(type), keeping pointer markers. A struct keyword in front of a
// known type is dropped with it.
func (m *Model) rewriteTypes(expr string, rename func(*TypeDecl) string) string {
	toks := strings.Fields(normalizeDecl(expr))
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		name, ptr := splitPointer(tok)
		id, ok := m.syms.lookup(name)
		if !ok {
			out = append(out, tok)
			continue
		}
		if n := len(out); n > 0 && out[n-1] == "struct" {
			out = out[:n-1]
		}
		out = append(out, rename(m.store.mustType(id))+strings.Repeat("*", ptr))
	}
	return strings.Join(out, " ")
}

// declType renders a type for the declarations artifact, where only the
// forward-declared struct tags are known.
func (m *Model) declType(expr string) string {
	return m.rewriteTypes(expr, func(t *TypeDecl) string { return "struct " + t.ObjectStruct() })
}

// bodyType renders a type for method bodies, where typedef names are known.
func (m *Model) bodyType(expr string) string {
	return m.rewriteTypes(expr, func(t *TypeDecl) string { return t.ObjectType() })
}

// paramName extracts the identifier of a normalized parameter declaration.
func paramName(param string) string {
	toks := strings.Fields(param)
	if len(toks) == 0 {
		return ""
	}
	name := toks[len(toks)-1]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.TrimLeft(name, "*")
}

// guardSymbol turns a file name into an include-guard macro.
func guardSymbol(name string) string {
	var sb strings.Builder
	sb.WriteString("OOC_")
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}
	return sb.String()
}
