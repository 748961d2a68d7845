package generator

import "fmt"

// InitChain returns the construction steps of id: the nearest ancestor init
// first, then the table pointer (classes only), then growable arrays, then
// embedded members whose type (or an ancestor of it) defines init. An
// embedded class member that does not define init itself gets its table
// pointer set after the inherited init ran.
func (m *Model) InitChain(id TypeID) []ChainStep {
	td := m.store.mustType(id)
	var steps []ChainStep
	if owner := m.FindOwner(td.Base, methodInit); owner != NoType {
		steps = append(steps, ChainStep{Kind: StepBaseInit, Callee: m.store.mustType(owner).FuncName(methodInit), Owner: owner})
	}
	if td.Kind == KindClass {
		steps = append(steps, ChainStep{Kind: StepSetTable, Callee: td.TableVar(), Owner: id})
	}
	for _, mem := range td.Members {
		if mem.IsArray {
			steps = append(steps, ChainStep{Kind: StepArrayInit, Callee: m.opts.Runtime.ArrayInit, Owner: id, Member: mem.Name, TypeName: mem.ElemType})
		}
	}
	for _, mem := range td.Members {
		if mem.Embedded == NoType {
			continue
		}
		et := m.store.mustType(mem.Embedded)
		owner := m.FindOwner(mem.Embedded, methodInit)
		if owner != NoType {
			steps = append(steps, ChainStep{Kind: StepMemberInit, Callee: m.store.mustType(owner).FuncName(methodInit), Owner: owner, Member: mem.Name, TypeName: et.Name})
		}
		if et.Kind == KindClass && owner != et.ID {
			steps = append(steps, ChainStep{Kind: StepSetTable, Callee: et.TableVar(), Owner: et.ID, Member: mem.Name, TypeName: et.Name})
		}
	}
	return steps
}

// DestroyChain returns the teardown steps of id. Local resources go first
// and the nearest ancestor destroy is called last.
func (m *Model) DestroyChain(id TypeID) []ChainStep {
	td := m.store.mustType(id)
	var steps []ChainStep
	for _, mem := range td.Members {
		if mem.IsArray {
			steps = append(steps, ChainStep{Kind: StepArrayClear, Callee: m.opts.Runtime.ArrayClear, Owner: id, Member: mem.Name, TypeName: mem.ElemType})
		}
	}
	for _, mem := range td.Members {
		if mem.Embedded == NoType {
			continue
		}
		if owner := m.FindOwner(mem.Embedded, methodDestroy); owner != NoType {
			steps = append(steps, ChainStep{Kind: StepMemberDestroy, Callee: m.store.mustType(owner).FuncName(methodDestroy), Owner: owner, Member: mem.Name, TypeName: m.store.mustType(mem.Embedded).Name})
		}
	}
	if owner := m.FindOwner(td.Base, methodDestroy); owner != NoType {
		steps = append(steps, ChainStep{Kind: StepBaseDestroy, Callee: m.store.mustType(owner).FuncName(methodDestroy), Owner: owner})
	}
	return steps
}

// renderChain turns chain steps into macro body lines.
func (m *Model) renderChain(steps []ChainStep) []string {
	var out []string
	for _, s := range steps {
		switch s.Kind {
		case StepBaseInit, StepBaseDestroy:
			out = append(out, fmt.Sprintf("%s(%s);", s.Callee, selfParam))
		case StepSetTable:
			target := selfName + "->"
			if s.Member != "" {
				target += s.Member + "."
			}
			out = append(out, fmt.Sprintf("%s%s = %s;", target, tablePtrField, m.tableRef(m.store.mustType(s.Owner))))
		case StepArrayInit:
			out = append(out, fmt.Sprintf("%s(&%s->%s, sizeof(%s), %d);", s.Callee, selfName, s.Member, s.TypeName, m.opts.Runtime.ArrayGrowth))
		case StepArrayClear:
			out = append(out, fmt.Sprintf("%s(&%s->%s);", s.Callee, selfName, s.Member))
		case StepMemberInit:
			out = append(out,
				fmt.Sprintf("/* INIT %s %s */", s.Member, s.TypeName),
				fmt.Sprintf("%s(&%s->%s);", s.Callee, selfName, s.Member))
		case StepMemberDestroy:
			out = append(out,
				fmt.Sprintf("/* DESTROY %s %s */", s.Member, s.TypeName),
				fmt.Sprintf("%s(&%s->%s);", s.Callee, selfName, s.Member))
		default:
			panic(fmt.Sprintf("generator: unhandled chain step %v", s.Kind))
		}
	}
	return out
}

func lazyGetter(td *TypeDecl) string { return "_vtget_" + td.Name }

// tableRef is the expression assigned to the table pointer of a td object.
func (m *Model) tableRef(td *TypeDecl) string {
	if m.opts.StaticTableInit {
		return "&" + td.TableVar()
	}
	return lazyGetter(td) + "()"
}

// tableFixup returns the table expression a freshly initialized td object
// still needs, or "" when td is not a class or its own init sets the pointer.
func (m *Model) tableFixup(td *TypeDecl) string {
	if td.Kind != KindClass || m.FindOwner(td.ID, methodInit) == td.ID {
		return ""
	}
	return m.tableRef(td)
}
