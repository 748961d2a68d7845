package generator

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"
)

const (
	tmplRoot        = "file"
	tmplPrelude     = "prelude"
	tmplFactory     = "factory"
	tmplStaticTable = "static_table"
	tmplLazyTable   = "lazy_table"
	tmplInitTables  = "init_tables"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

// templateUses names what each fragment renders; every entry must be
// defined by the embedded files.
var templateUses = map[string]string{
	tmplPrelude:     "macro prelude",
	tmplFactory:     "new_X factory",
	tmplStaticTable: "static dispatch table",
	tmplLazyTable:   "lazy dispatch table",
	tmplInitTables:  "_init_vtables routine",
}

var loadTemplates = sync.OnceValues(func() (*template.Template, error) {
	t, err := template.New(tmplRoot).ParseFS(templatesFS, templatePattern)
	if err != nil {
		return nil, err
	}
	var missing []string
	for name, use := range templateUses {
		if t.Lookup(name) == nil {
			missing = append(missing, fmt.Sprintf("%s (%s)", name, use))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("missing templates: %s", strings.Join(missing, ", "))
	}
	return t, nil
})

// executeLines runs a named template and returns its output split into
// lines, without the trailing newline.
func executeLines(name string, data any) ([]string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

type preludeData struct {
	Debug bool
	Free  string
}

type factoryData struct {
	Name     string
	Type     string
	Var      string
	Alloc    string
	Init     string // empty when no type in the hierarchy defines init
	Table    string // set when init does not assign the table pointer
	Disabled bool
}

type staticTableData struct {
	TableType string
	TableVar  string
	Funcs     []string
}

type tableAssign struct {
	Slot string
	Func string
}

type lazyTableData struct {
	TableType string
	TableVar  string
	Getter    string
	Assigns   []tableAssign
}

type initTablesEntry struct {
	Getter  string
	Variant string
}
