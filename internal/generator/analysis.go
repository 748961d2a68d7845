package generator

import "github.com/calumari/oocgen/internal/diag"

// Model is a resolved view of a Store: bases are linked, members are
// classified and dispatch slots can be queried. Build it with Analyze.
type Model struct {
	store  *Store
	opts   Options
	syms   symbolTable
	tables *vtableBuilder
}

// Analyze resolves the declarations in s in place and reports every
// recoverable problem to r. It never fails; unresolved references degrade
// to "no base".
func Analyze(s *Store, opts Options, r diag.Reporter) *Model {
	if r == nil {
		r = diag.NopReporter{}
	}
	opts = opts.withDefaults()
	syms := newSymbolTable(s, r)
	tr := &typeResolver{store: s, syms: syms, opts: opts, r: r}
	tr.resolve()

	m := &Model{store: s, opts: opts, syms: syms, tables: newVTableBuilder(s)}
	m.checkIdentifiers(r)
	return m
}

func (m *Model) Store() *Store    { return m.store }
func (m *Model) Options() Options { return m.opts }

// Lookup finds the first type declared with name.
func (m *Model) Lookup(name string) (TypeID, bool) { return m.syms.lookup(name) }

// VirtualSlots returns a copy of the dispatch slots of id.
func (m *Model) VirtualSlots(id TypeID) []Slot {
	return append([]Slot(nil), m.tables.slots(id)...)
}

// FindOwner walks from id towards the root and returns the first type that
// declares method, or NoType.
func (m *Model) FindOwner(id TypeID, method string) TypeID {
	for cur := id; cur != NoType; {
		td := m.store.mustType(cur)
		if td.HasMethod(method) {
			return cur
		}
		cur = td.Base
	}
	return NoType
}

// Ancestors lists the base chain of id, nearest first.
func (m *Model) Ancestors(id TypeID) []TypeID {
	var out []TypeID
	for cur := m.store.mustType(id).Base; cur != NoType; cur = m.store.mustType(cur).Base {
		out = append(out, cur)
	}
	return out
}

// checkIdentifiers reports generated function names that exceed the
// configured length. The names are still emitted.
func (m *Model) checkIdentifiers(r diag.Reporter) {
	limit := m.opts.MaxIdentifierLength
	for _, id := range m.store.TypeIDs() {
		td := m.store.mustType(id)
		for _, meth := range td.Methods {
			name := td.FuncName(meth.Name)
			if len(name) > limit {
				diag.Reportf(r, diag.IdentifierTooLong, meth.Pos, td.Name,
					"method name too long (%d > %d): %s", len(name), limit, name)
			}
		}
		if name := "new_" + td.Name; len(name) > limit {
			diag.Reportf(r, diag.IdentifierTooLong, td.Pos, td.Name,
				"factory name too long (%d > %d): %s", len(name), limit, name)
		}
	}
}
