package generator

import (
	"fmt"
	"strings"
)

// ObjectLayout returns the fields of id in memory order. A class starts with
// its dispatch-table pointer; inherited fields follow, base first, so the
// layout of a type always begins with the layout of its base.
func (m *Model) ObjectLayout(id TypeID) []Field {
	td := m.store.mustType(id)
	var fields []Field
	if td.Kind == KindClass {
		fields = append(fields, Field{Name: tablePtrField, Type: td.TableType() + "*", Owner: id, TablePtr: true})
	}
	return append(fields, m.dataFields(id)...)
}

func (m *Model) dataFields(id TypeID) []Field {
	td := m.store.mustType(id)
	var fields []Field
	if td.Base != NoType {
		fields = m.dataFields(td.Base)
	}
	for _, mem := range td.Members {
		typ := m.opts.Runtime.ArrayType
		if !mem.IsArray {
			typ = m.declType(mem.Type)
		}
		fields = append(fields, Field{Name: mem.Name, Type: typ, Suffix: mem.Suffix, Owner: id})
	}
	return fields
}

// TableLayout returns the dispatch-table struct of id: one function pointer
// per slot, typed by the signature of the slot's introducer with an untyped
// self pointer first.
func (m *Model) TableLayout(id TypeID) []TableField {
	slots := m.tables.slots(id)
	out := make([]TableField, 0, len(slots))
	for _, s := range slots {
		params := []string{"void* " + selfParam}
		for _, p := range s.Method.Params {
			params = append(params, m.declType(p))
		}
		decl := fmt.Sprintf("%s (*%s)(%s);", m.declType(s.Method.Result), s.Name, strings.Join(params, ", "))
		out = append(out, TableField{Slot: s, Decl: decl})
	}
	return out
}

func (m *Model) renderForwardDecl(b *lineBuf, td *TypeDecl) {
	openGuard(b, td.Variant)
	b.linef(0, "typedef struct %s %s;", td.ObjectStruct(), td.ObjectStruct())
	closeGuard(b, td.Variant)
}

// renderDefinition writes the struct surface of one type: its dispatch-table
// struct (classes only), its object struct, method prototypes and the
// init_X convenience macro.
func (m *Model) renderDefinition(b *lineBuf, td *TypeDecl) {
	base := ""
	if td.Base != NoType {
		base = "(" + m.store.mustType(td.Base).Name + ")"
	}
	b.linef(0, "/* ########## %s %s%s ########## */", td.Kind, td.Name, base)
	openGuard(b, td.Variant)

	if td.Kind == KindClass {
		b.linef(0, "typedef struct %s {", td.TableStruct())
		fields := m.TableLayout(td.ID)
		for _, f := range fields {
			b.line(1, f.Decl)
		}
		if len(fields) == 0 {
			b.line(1, "char _dummy; /* no virtual methods */")
		}
		b.linef(0, "} %s;", td.TableType())
		b.blank()
	}

	b.linef(0, "typedef struct %s {", td.ObjectStruct())
	layout := m.ObjectLayout(td.ID)
	for _, f := range layout {
		b.linef(1, "%s %s%s;", f.Type, f.Name, f.Suffix)
	}
	if len(layout) == 0 {
		b.line(1, "char _dummy; /* no fields */")
	}
	b.linef(0, "} %s;", td.ObjectType())
	b.blank()

	m.renderPrototypes(b, td)
	b.blank()

	owner := m.FindOwner(td.ID, methodInit)
	table := m.tableFixup(td)
	switch {
	case owner != NoType && table != "":
		b.linef(0, "#define init_%s(pvar) \\", td.Name)
		b.linef(1, "(%s(pvar), (pvar)->%s = %s)", m.store.mustType(owner).FuncName(methodInit), tablePtrField, table)
	case owner != NoType:
		b.linef(0, "#define init_%s(pvar) \\", td.Name)
		b.linef(1, "%s(pvar)", m.store.mustType(owner).FuncName(methodInit))
	case table != "":
		b.linef(0, "#define init_%s(pvar) \\", td.Name)
		b.linef(1, "((pvar)->%s = %s)", tablePtrField, table)
	}
	closeGuard(b, td.Variant)
	b.blank()
}

func (m *Model) renderPrototypes(b *lineBuf, td *TypeDecl) {
	for _, meth := range td.Methods {
		params := []string{"/*" + td.ObjectType() + "*/void* " + selfParam}
		for _, p := range meth.Params {
			params = append(params, m.declType(p))
		}
		b.linef(0, "static %s %s __ARGS((%s));", m.declType(meth.Result), td.FuncName(meth.Name), strings.Join(params, ", "))
	}
}
