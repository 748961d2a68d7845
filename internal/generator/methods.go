package generator

import (
	"fmt"
	"strings"
)

// renderBodies writes everything a method implementation needs for one
// type: the super-table macros, the _BODY macros carrying the constructor
// and destructor chains, a commented skeleton per method and the new_X
// factory.
func (m *Model) renderBodies(b *lineBuf, td *TypeDecl) error {
	b.linef(0, "/* %s */", td.Name)
	openGuard(b, td.Variant)
	for _, meth := range td.Methods {
		if td.Kind == KindClass && meth.Name != methodInit && m.FindOwner(td.Base, meth.Name) != NoType {
			b.linef(0, "#define _super_vt_%s_%s() %s", td.Name, meth.Name, m.superTable(td.Base))
			b.blank()
		}

		var body []string
		if m.opts.DebugMode {
			body = append(body, castExpr(td))
		}
		if meth.Name == methodInit {
			body = append(body, m.renderChain(m.InitChain(td.ID))...)
		}
		b.macro(fmt.Sprintf("_%s_%s_BODY", td.Name, meth.Name), body)
		if meth.Name == methodDestroy {
			b.macro(fmt.Sprintf("_%s_DESTROY", td.Name), m.renderChain(m.DestroyChain(td.ID)))
		}
		m.renderSkeleton(b, td, meth)
	}

	if err := m.renderFactory(b, td); err != nil {
		return err
	}
	closeGuard(b, td.Variant)
	b.blank()
	return nil
}

func (m *Model) superTable(base TypeID) string {
	td := m.store.mustType(base)
	if m.opts.StaticTableInit {
		return td.TableVar()
	}
	return "(*" + lazyGetter(td) + "())"
}

func castExpr(td *TypeDecl) string {
	if td.Kind == KindStruct {
		return fmt.Sprintf("CAST_STRUCT(%s, %s);", selfName, td.Name)
	}
	return fmt.Sprintf("CAST_CLASS(%s, %s);", selfName, td.Name)
}

// renderSkeleton writes a K&R style definition inside a /*- -*/ comment for
// the user to copy next to the declaration block.
func (m *Model) renderSkeleton(b *lineBuf, td *TypeDecl, meth Method) {
	params := []string{"void* " + selfParam}
	for _, p := range meth.Params {
		params = append(params, m.bodyType(p))
	}
	args := make([]string, 0, len(params))
	for _, p := range params {
		args = append(args, paramName(p))
	}

	b.line(0, "/*-")
	b.linef(1, "static %s", m.bodyType(meth.Result))
	b.linef(0, "%s(%s)", td.FuncName(meth.Name), strings.Join(args, ", "))
	for _, p := range params {
		b.linef(1, "%s;", p)
	}
	b.line(0, "{")
	b.linef(1, "METHOD(%s, %s);", td.Name, meth.Name)
	if meth.Name == methodDestroy {
		b.linef(1, "END_DESTROY(%s);", td.Name)
	}
	b.line(0, "}")
	b.line(0, "-*/")
	b.blank()
}

// renderFactory writes new_X. A type that declares its own new only gets the
// default as a commented reference.
func (m *Model) renderFactory(b *lineBuf, td *TypeDecl) error {
	data := factoryData{
		Name:     td.Name,
		Type:     td.ObjectType(),
		Var:      "_" + td.Prefix,
		Alloc:    m.opts.Runtime.Alloc,
		Table:    m.tableFixup(td),
		Disabled: td.HasMethod(methodNew),
	}
	if owner := m.FindOwner(td.ID, methodInit); owner != NoType {
		data.Init = m.store.mustType(owner).FuncName(methodInit)
	}
	lines, err := executeLines(tmplFactory, data)
	if err != nil {
		return err
	}
	b.appendLines(lines)
	return nil
}
