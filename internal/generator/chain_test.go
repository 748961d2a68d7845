package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const bagSource = `/* [ooc]
class Object {
    void init();
    void destroy();
};
struct Point {
    int x;
    void init();
    void destroy();
};
class Bag(Object) [bag] {
    array(int) items;
    Point origin;
    Point* cursor;
    void init();
    void destroy();
};
*/
`

func stepKinds(steps []ChainStep) []StepKind {
	var out []StepKind
	for _, s := range steps {
		out = append(out, s.Kind)
	}
	return out
}

func TestInitChain(t *testing.T) {
	m, bag := analyzeString(t, bagSource, DefaultOptions())
	require.Zero(t, bag.Len())
	obj, point, bg := typeNamed(t, m, "Object"), typeNamed(t, m, "Point"), typeNamed(t, m, "Bag")

	steps := m.InitChain(bg.ID)
	require.Equal(t, []StepKind{StepBaseInit, StepSetTable, StepArrayInit, StepMemberInit}, stepKinds(steps))
	require.Equal(t, ChainStep{Kind: StepBaseInit, Callee: "_Obje_init", Owner: obj.ID}, steps[0])
	require.Equal(t, "_vt_Bag", steps[1].Callee)
	require.Equal(t, ChainStep{Kind: StepArrayInit, Callee: "ga_init2", Owner: bg.ID, Member: "items", TypeName: "int"}, steps[2])
	require.Equal(t, ChainStep{Kind: StepMemberInit, Callee: "_Poin_init", Owner: point.ID, Member: "origin", TypeName: "Point"}, steps[3])

	require.Equal(t, []string{
		"_Obje_init(_self);",
		"self->op = &_vt_Bag;",
		"ga_init2(&self->items, sizeof(int), 128);",
		"/* INIT origin Point */",
		"_Poin_init(&self->origin);",
	}, m.renderChain(steps))
}

func TestDestroyChain(t *testing.T) {
	m, _ := analyzeString(t, bagSource, DefaultOptions())
	steps := m.DestroyChain(typeNamed(t, m, "Bag").ID)
	require.Equal(t, []StepKind{StepArrayClear, StepMemberDestroy, StepBaseDestroy}, stepKinds(steps))
	require.Equal(t, []string{
		"ga_clear(&self->items);",
		"/* DESTROY origin Point */",
		"_Poin_destroy(&self->origin);",
		"_Obje_destroy(_self);",
	}, m.renderChain(steps))
}

func TestChainNearestAncestor(t *testing.T) {
	m, _ := analyzeString(t, oocBlock(
		"class Object {", "    void init();", "    void destroy();", "};",
		"class Mid(Object) {", "};",
		"class Leaf(Mid) {", "    void init();", "};",
		"struct Plain {", "    int x;", "};",
		"struct Sized(Plain) {", "    array(char_u) buf;", "};",
	), DefaultOptions())

	steps := m.InitChain(typeNamed(t, m, "Leaf").ID)
	require.Equal(t, "_Obje_init", steps[0].Callee)
	require.Equal(t, typeNamed(t, m, "Object").ID, steps[0].Owner)

	destroy := m.DestroyChain(typeNamed(t, m, "Leaf").ID)
	require.Equal(t, []StepKind{StepBaseDestroy}, stepKinds(destroy))

	require.Empty(t, m.InitChain(typeNamed(t, m, "Plain").ID))
	require.Equal(t, []StepKind{StepArrayInit}, stepKinds(m.InitChain(typeNamed(t, m, "Sized").ID)))
}

func TestRenderChainLazyTable(t *testing.T) {
	opts := DefaultOptions()
	opts.StaticTableInit = false
	m, _ := analyzeString(t, bagSource, opts)
	lines := m.renderChain(m.InitChain(typeNamed(t, m, "Bag").ID))
	require.Equal(t, "self->op = _vtget_Bag();", lines[1])
}

func TestRenderChainRuntime(t *testing.T) {
	opts := DefaultOptions()
	opts.Runtime = Runtime{ArrayInit: "vec_init", ArrayClear: "vec_free", ArrayGrowth: 8}
	m, _ := analyzeString(t, bagSource, opts)
	id := typeNamed(t, m, "Bag").ID
	require.Contains(t, m.renderChain(m.InitChain(id)), "vec_init(&self->items, sizeof(int), 8);")
	require.Contains(t, m.renderChain(m.DestroyChain(id)), "vec_free(&self->items);")
	require.Equal(t, "garray_T", m.ObjectLayout(id)[1].Type)
}

const inheritedInitSource = `/* [ooc]
class Object {
    void init();
    void destroy();
};
class Pen(Object) {
    int width;
};
class Canvas(Object) [can] {
    Pen pen;
    void init();
};
*/
`

func TestInitChainEmbeddedClass(t *testing.T) {
	t.Run("inherited init resets the member table", func(t *testing.T) {
		m, bag := analyzeString(t, inheritedInitSource, DefaultOptions())
		require.Zero(t, bag.Len())
		obj, pen := typeNamed(t, m, "Object"), typeNamed(t, m, "Pen")

		steps := m.InitChain(typeNamed(t, m, "Canvas").ID)
		require.Equal(t, []StepKind{StepBaseInit, StepSetTable, StepMemberInit, StepSetTable}, stepKinds(steps))
		require.Equal(t, ChainStep{Kind: StepMemberInit, Callee: "_Obje_init", Owner: obj.ID, Member: "pen", TypeName: "Pen"}, steps[2])
		require.Equal(t, ChainStep{Kind: StepSetTable, Callee: "_vt_Pen", Owner: pen.ID, Member: "pen", TypeName: "Pen"}, steps[3])
		require.Equal(t, []string{
			"_Obje_init(_self);",
			"self->op = &_vt_Canvas;",
			"/* INIT pen Pen */",
			"_Obje_init(&self->pen);",
			"self->pen.op = &_vt_Pen;",
		}, m.renderChain(steps))
	})

	t.Run("lazy tables", func(t *testing.T) {
		opts := DefaultOptions()
		opts.StaticTableInit = false
		m, _ := analyzeString(t, inheritedInitSource, opts)
		lines := m.renderChain(m.InitChain(typeNamed(t, m, "Canvas").ID))
		require.Equal(t, "self->pen.op = _vtget_Pen();", lines[4])
	})

	t.Run("no init in the member hierarchy", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"class Tag {", "    int id;", "};",
			"struct Label {", "    Tag tag;", "};",
		), DefaultOptions())
		require.Zero(t, bag.Len())
		steps := m.InitChain(typeNamed(t, m, "Label").ID)
		require.Equal(t, []StepKind{StepSetTable}, stepKinds(steps))
		require.Equal(t, []string{"self->tag.op = &_vt_Tag;"}, m.renderChain(steps))
	})

	t.Run("member type defines init", func(t *testing.T) {
		m, _ := analyzeString(t, oocBlock(
			"class Object {", "    void init();", "};",
			"class Canvas(Object) {", "    void init();", "};",
			"class Frame(Object) {", "    Canvas inner;", "};",
		), DefaultOptions())
		steps := m.InitChain(typeNamed(t, m, "Frame").ID)
		require.Equal(t, []StepKind{StepBaseInit, StepSetTable, StepMemberInit}, stepKinds(steps))
		require.Equal(t, "_Canv_init", steps[2].Callee)
	})
}

func TestTableFixup(t *testing.T) {
	m, _ := analyzeString(t, inheritedInitSource, DefaultOptions())
	require.Empty(t, m.tableFixup(typeNamed(t, m, "Object")))
	require.Empty(t, m.tableFixup(typeNamed(t, m, "Canvas")))
	require.Equal(t, "&_vt_Pen", m.tableFixup(typeNamed(t, m, "Pen")))

	sm, _ := analyzeString(t, bagSource, DefaultOptions())
	require.Empty(t, sm.tableFixup(typeNamed(t, sm, "Point")))

	opts := DefaultOptions()
	opts.StaticTableInit = false
	lm, _ := analyzeString(t, inheritedInitSource, opts)
	require.Equal(t, "_vtget_Pen()", lm.tableFixup(typeNamed(t, lm, "Pen")))
}
