package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calumari/oocgen/internal/diag"
)

func TestResolveBase(t *testing.T) {
	t.Run("forward reference", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"class B(A) {", "};",
			"class A {", "    void f();", "};",
		), DefaultOptions())
		require.Zero(t, bag.Len())
		require.Equal(t, typeNamed(t, m, "A").ID, typeNamed(t, m, "B").Base)
	})

	t.Run("unknown base", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock("class B(Missing) {", "};"), DefaultOptions())
		require.Equal(t, []diag.Code{diag.UnknownBaseClass}, codes(bag))
		require.True(t, bag.HasErrors())
		require.Equal(t, NoType, typeNamed(t, m, "B").Base)
	})

	t.Run("object sentinel", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"class Object {", "};",
			"class C(object) {", "};",
		), DefaultOptions())
		require.Zero(t, bag.Len())
		require.Equal(t, NoType, typeNamed(t, m, "C").Base)
	})

	t.Run("implicit root", func(t *testing.T) {
		m, _ := analyzeString(t, oocBlock(
			"class Object {", "};",
			"class D {", "};",
			"struct S {", "};",
		), DefaultOptions())
		require.Equal(t, typeNamed(t, m, "Object").ID, typeNamed(t, m, "D").Base)
		require.Equal(t, NoType, typeNamed(t, m, "Object").Base)
		require.Equal(t, NoType, typeNamed(t, m, "S").Base)
	})

	t.Run("implicit root absent", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock("class D {", "};"), DefaultOptions())
		require.Zero(t, bag.Len())
		require.Equal(t, NoType, typeNamed(t, m, "D").Base)
	})

	t.Run("custom root", func(t *testing.T) {
		opts := DefaultOptions()
		opts.RootTypeName = "Base"
		m, _ := analyzeString(t, oocBlock(
			"class Base {", "};",
			"class D {", "};",
		), opts)
		require.Equal(t, typeNamed(t, m, "Base").ID, typeNamed(t, m, "D").Base)
	})

	t.Run("incompatible kind", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"struct S {", "    int x;", "};",
			"class K(S) {", "};",
		), DefaultOptions())
		require.Equal(t, []diag.Code{diag.IncompatibleBaseKind}, codes(bag))
		require.Equal(t, NoType, typeNamed(t, m, "K").Base)
	})

	t.Run("cycle", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"class A(B) {", "};",
			"class B(A) {", "};",
		), DefaultOptions())
		require.Equal(t, []diag.Code{diag.InheritanceCycle}, codes(bag))
		a, b := typeNamed(t, m, "A"), typeNamed(t, m, "B")
		require.Equal(t, NoType, a.Base)
		require.Equal(t, a.ID, b.Base)
		require.Empty(t, m.Ancestors(a.ID))
		require.Equal(t, []TypeID{a.ID}, m.Ancestors(b.ID))
	})

	t.Run("self cycle", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock("class A(A) {", "};"), DefaultOptions())
		require.Equal(t, []diag.Code{diag.InheritanceCycle}, codes(bag))
		require.Equal(t, NoType, typeNamed(t, m, "A").Base)
	})
}

func TestDuplicateTypeName(t *testing.T) {
	t.Run("unguarded", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"class A {", "    int first;", "};",
			"class A {", "    int second;", "};",
		), DefaultOptions())
		require.Equal(t, []diag.Code{diag.DuplicateTypeName}, codes(bag))
		require.False(t, bag.HasErrors())
		require.Equal(t, "first", typeNamed(t, m, "A").Members[0].Name)
	})

	t.Run("variant", func(t *testing.T) {
		_, bag := analyzeString(t, oocBlock(
			"class A [variant FEAT_A] {", "};",
			"class A {", "};",
		), DefaultOptions())
		require.Zero(t, bag.Len())
	})
}

func TestClassifyMembers(t *testing.T) {
	m, bag := analyzeString(t, oocBlock(
		"struct Point {", "    int x;", "};",
		"class Shape {",
		"    Point origin;",
		"    Point* ref;",
		"    array(Point) points;",
		"    array(int) ids;",
		"    int n;",
		"};",
	), DefaultOptions())
	require.Zero(t, bag.Len())
	point := typeNamed(t, m, "Point")
	mem := typeNamed(t, m, "Shape").Members
	require.Len(t, mem, 5)

	require.Equal(t, point.ID, mem[0].Embedded)
	require.False(t, mem[0].IsArray)

	require.Equal(t, NoType, mem[1].Embedded)

	require.True(t, mem[2].IsArray)
	require.Equal(t, "Point_T", mem[2].ElemType)
	require.Equal(t, NoType, mem[2].Embedded)

	require.True(t, mem[3].IsArray)
	require.Equal(t, "int", mem[3].ElemType)

	require.False(t, mem[4].IsArray)
	require.Equal(t, NoType, mem[4].Embedded)
}

func TestIdentifierTooLong(t *testing.T) {
	m, bag := analyzeString(t, oocBlock(
		"class AVeryLongClassNameUsedForTesting [averyveryverylongprefix] {",
		"    void a_rather_long_method_name();",
		"};",
	), DefaultOptions())
	require.Equal(t, []diag.Code{diag.IdentifierTooLong, diag.IdentifierTooLong}, codes(bag))
	require.False(t, bag.HasErrors())

	art, err := Emit(m)
	require.NoError(t, err)
	require.Contains(t, string(art.Declarations), "_averyveryverylongprefix_a_rather_long_method_name")
}
