package generator

import (
	"fmt"

	"github.com/calumari/oocgen/internal/diag"
)

// Generate resolves the declarations in s and renders both artifacts.
func Generate(s *Store, opts Options, r diag.Reporter) (*Artifacts, error) {
	return Emit(Analyze(s, opts, r))
}

// Emit renders a resolved model. Output depends only on the model and its
// options, so identical input always yields identical bytes.
func Emit(m *Model) (*Artifacts, error) {
	var decls lineBuf
	if err := m.renderDeclSection(&decls); err != nil {
		return nil, err
	}
	var bodies lineBuf
	if err := m.renderBodySection(&bodies); err != nil {
		return nil, err
	}

	if m.opts.SingleFile {
		var out lineBuf
		m.renderBanner(&out)
		out.blank()
		out.appendBuf(&decls)
		out.appendBuf(&bodies)
		return &Artifacts{Bodies: out.bytes()}, nil
	}

	guard := guardSymbol(m.opts.HeaderName)
	var header lineBuf
	m.renderBanner(&header)
	header.linef(0, "#ifndef %s", guard)
	header.linef(0, "#define %s", guard)
	header.blank()
	header.appendBuf(&decls)
	header.linef(0, "#endif /* %s */", guard)

	var impl lineBuf
	m.renderBanner(&impl)
	impl.linef(0, "#include \"%s\"", m.opts.HeaderName)
	impl.blank()
	impl.appendBuf(&bodies)

	return &Artifacts{Declarations: header.bytes(), Bodies: impl.bytes()}, nil
}

func (m *Model) renderBanner(b *lineBuf) {
	b.line(0, "/* vim: set ft=c sw=4 ts=8 et fileencoding=utf-8 :vim */")
	b.line(0, "/* NOTE: This file is auto-generated. DO NOT EDIT. The changes will be lost. */")
	if m.opts.Stamp != "" {
		b.linef(0, "/* Generated by %s. */", m.opts.Stamp)
	}
}

// renderDeclSection writes constants, forward declarations, the definitions
// interleaved with typedefs in encounter order, and the macro prelude.
func (m *Model) renderDeclSection(b *lineBuf) error {
	for _, c := range m.store.Constants() {
		b.linef(0, "#define %s %s", c.Name, c.Value)
	}
	b.blank()

	ids := m.store.TypeIDs()
	for _, id := range ids {
		m.renderForwardDecl(b, m.store.mustType(id))
	}
	b.blank()

	for _, d := range m.store.Decls() {
		switch d.Kind {
		case DeclConstant:
			// already emitted up front
		case DeclTypedef:
			b.line(0, d.Value)
			b.blank()
		case DeclClass, DeclStruct:
			m.renderDefinition(b, m.store.mustType(d.Type))
		default:
			panic(fmt.Sprintf("generator: unhandled declaration kind %v", d.Kind))
		}
	}

	lines, err := executeLines(tmplPrelude, preludeData{Debug: m.opts.DebugMode, Free: m.opts.Runtime.Free})
	if err != nil {
		return err
	}
	b.appendLines(lines)
	b.blank()
	return nil
}

// renderBodySection writes the dispatch-table instances followed by the
// per-type skeletons.
func (m *Model) renderBodySection(b *lineBuf) error {
	if err := m.renderTables(b); err != nil {
		return err
	}
	b.line(0, "/* --------------------------- */")
	b.line(0, "/* Skeletons for class methods */")
	b.line(0, "/* --------------------------- */")
	for _, id := range m.store.TypeIDs() {
		if err := m.renderBodies(b, m.store.mustType(id)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) renderTables(b *lineBuf) error {
	var entries []initTablesEntry
	for _, id := range m.store.TypeIDs() {
		td := m.store.mustType(id)
		if td.Kind != KindClass {
			continue
		}
		slots := m.tables.slots(id)
		var (
			lines []string
			err   error
		)
		if m.opts.StaticTableInit {
			data := staticTableData{TableType: td.TableType(), TableVar: td.TableVar()}
			for _, s := range slots {
				data.Funcs = append(data.Funcs, m.store.mustType(s.Owner).FuncName(s.Name))
			}
			lines, err = executeLines(tmplStaticTable, data)
		} else {
			data := lazyTableData{TableType: td.TableType(), TableVar: td.TableVar(), Getter: lazyGetter(td)}
			for _, s := range slots {
				data.Assigns = append(data.Assigns, tableAssign{Slot: s.Name, Func: m.store.mustType(s.Owner).FuncName(s.Name)})
			}
			lines, err = executeLines(tmplLazyTable, data)
			entries = append(entries, initTablesEntry{Getter: data.Getter, Variant: td.Variant})
		}
		if err != nil {
			return err
		}
		openGuard(b, td.Variant)
		b.appendLines(lines)
		closeGuard(b, td.Variant)
		b.blank()
	}

	if !m.opts.StaticTableInit && len(entries) > 0 {
		lines, err := executeLines(tmplInitTables, entries)
		if err != nil {
			return err
		}
		b.appendLines(lines)
		b.blank()
	}
	return nil
}
