package generator

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/calumari/oocgen/internal/diag"
)

var (
	rxBlockStart = regexp.MustCompile(`^\s*/\*\s*\[ooc\]`)
	rxHeader     = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s+([A-Za-z0-9_]+)` +
		`(?:\s*\(\s*([A-Za-z0-9_]*)\s*\))?` + // base
		`(?:\s*\[(.*)\])?` + // options
		`\s*(\{)?\s*(?://.*)?$`)
	rxConst   = regexp.MustCompile(`^\s*const\s+([A-Za-z0-9_]+)\s*=\s*(.+?)\s*;`)
	rxTypedef = regexp.MustCompile(`^\s*typedef\s+\S+\s+\S+`)
	rxMethod  = regexp.MustCompile(`^\s*(.*[\s*])([A-Za-z0-9_]+)\s*\((.*)\)\s*;`)
	rxMember  = regexp.MustCompile(`^\s*(.*[\s*])([A-Za-z0-9_]+)\s*(\[.*\])?\s*;`)
)

// ScanSource appends every declaration found in the [ooc] comment blocks of
// src to s, in source order. Malformed lines are reported and skipped.
func ScanSource(s *Store, file string, src []byte, r diag.Reporter) {
	if r == nil {
		r = diag.NopReporter{}
	}
	sc := &scanner{store: s, file: file, lines: splitLines(src), r: r}
	sc.scan()
}

func splitLines(src []byte) []string {
	var lines []string
	in := bufio.NewScanner(bytes.NewReader(src))
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for in.Scan() {
		lines = append(lines, strings.TrimRight(in.Text(), "\r"))
	}
	return lines
}

type scanner struct {
	store *Store
	file  string
	lines []string
	r     diag.Reporter
}

func (sc *scanner) pos(i int) diag.Pos { return diag.Pos{File: sc.file, Line: i + 1} }

func (sc *scanner) scan() {
	for i := 0; i < len(sc.lines); i++ {
		if rxBlockStart.MatchString(sc.lines[i]) {
			i = sc.scanBlock(i)
		}
	}
}

// scanBlock consumes the lines after a block start up to and including the
// line that closes the comment, and returns its index.
func (sc *scanner) scanBlock(i int) int {
	for i++; i < len(sc.lines); i++ {
		l := sc.lines[i]
		ls := strings.TrimSpace(l)
		if strings.Contains(ls, "*/") {
			return i
		}
		if ls == "" || ls == "*" || strings.HasPrefix(ls, "//") {
			continue
		}
		if mo := rxConst.FindStringSubmatch(l); mo != nil {
			sc.store.AddConstant(sc.pos(i), mo[1], mo[2])
			continue
		}
		if rxTypedef.MatchString(l) {
			sc.store.AddTypedef(sc.pos(i), ls)
			continue
		}
		if mo := rxHeader.FindStringSubmatch(l); mo != nil && sc.opensBody(i, mo) {
			i = sc.scanType(i, mo)
			continue
		}
		diag.Reportf(sc.r, diag.UnsupportedStatement, sc.pos(i), "", "unsupported statement: %s", ls)
	}
	return i
}

// opensBody reports whether a header-shaped line starts a type body. class
// and struct always do; other keywords only when a brace follows.
func (sc *scanner) opensBody(i int, mo []string) bool {
	switch mo[1] {
	case "class", "struct":
		return true
	}
	if mo[5] != "" {
		return true
	}
	for j := i + 1; j < len(sc.lines); j++ {
		next := strings.TrimSpace(sc.lines[j])
		if next == "" {
			continue
		}
		return strings.HasPrefix(next, "{")
	}
	return false
}

// scanType parses a declaration header and its body and returns the index
// of the last consumed line.
func (sc *scanner) scanType(i int, mo []string) int {
	td := TypeDecl{Name: mo[2], BaseName: mo[3], Pos: sc.pos(i)}
	supported := true
	switch mo[1] {
	case "class":
		td.Kind = KindClass
	case "struct":
		td.Kind = KindStruct
	default:
		supported = false
		diag.Reportf(sc.r, diag.UnsupportedDeclarationKind, td.Pos, td.Name,
			"unsupported declaration kind %q; expected class or struct", mo[1])
	}
	if mo[4] != "" {
		sc.parseOptions(&td, mo[4], i)
	}
	if !supported {
		// the body of an unsupported kind is consumed without further reports
		r := sc.r
		sc.r = diag.NopReporter{}
		i = sc.scanBody(i, &td)
		sc.r = r
		return i
	}
	i = sc.scanBody(i, &td)
	sc.store.AddType(td)
	return i
}

// parseOptions handles "[prefix]", "[prefix, typename]", "[prefix X]" and
// "[variant X]" style options.
func (sc *scanner) parseOptions(td *TypeDecl, raw string, line int) {
	for idx, opt := range strings.Split(raw, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		tv := strings.Fields(opt)
		switch {
		case len(tv) == 1 && idx == 0:
			td.Prefix = opt
		case len(tv) == 1 && idx == 1:
			// legacy type name; the object type is always Name_T
		case len(tv) == 2 && tv[0] == "prefix":
			td.Prefix = tv[1]
		case len(tv) == 2 && tv[0] == "variant":
			td.Variant = tv[1]
		default:
			diag.Reportf(sc.r, diag.BadClassOption, sc.pos(line), td.Name, "bad class option %q", opt)
		}
	}
}

// scanBody reads members and methods until the closing brace. When the
// comment closes first, the closing line is left for the caller so that it
// ends the block.
func (sc *scanner) scanBody(i int, td *TypeDecl) int {
	for i++; i < len(sc.lines); i++ {
		l := sc.lines[i]
		if strings.Contains(l, "*/") {
			diag.Reportf(sc.r, diag.PrematureBlockTermination, sc.pos(i), td.Name,
				"end of comment found in definition of %s", td.Name)
			return i - 1
		}
		ls := strings.TrimSpace(l)
		if strings.HasPrefix(ls, "}") {
			return i
		}
		ls = strings.ReplaceAll(ls, "{", " ")
		if k := strings.Index(ls, "//"); k >= 0 {
			ls = ls[:k]
		}
		ls = strings.TrimSpace(ls)
		if ls == "" {
			continue
		}
		if mo := rxMethod.FindStringSubmatch(ls); mo != nil {
			td.Methods = append(td.Methods, Method{
				Name:   strings.TrimSpace(mo[2]),
				Result: strings.TrimSpace(mo[1]),
				Params: splitParams(mo[3]),
				Pos:    sc.pos(i),
			})
			continue
		}
		if mo := rxMember.FindStringSubmatch(ls); mo != nil {
			td.Members = append(td.Members, Member{
				Name:   strings.TrimSpace(mo[2]),
				Type:   strings.TrimSpace(mo[1]),
				Suffix: mo[3],
				Pos:    sc.pos(i),
			})
			continue
		}
		diag.Reportf(sc.r, diag.UnrecognizedDeclarationLine, sc.pos(i), td.Name, "unknown declaration: %s", ls)
	}
	diag.Reportf(sc.r, diag.PrematureBlockTermination, sc.pos(len(sc.lines)-1), td.Name,
		"end of input found in definition of %s", td.Name)
	return i
}

// splitParams splits a parameter list. "()" and "(void)" both yield no
// parameters.
func splitParams(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "void" {
		return nil
	}
	parts := strings.Split(raw, ",")
	params := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return params
}
