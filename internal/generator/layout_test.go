package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fieldNames(fields []Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func TestObjectLayout(t *testing.T) {
	t.Run("class hierarchy", func(t *testing.T) {
		m, _ := analyzeString(t, hierarchySource, DefaultOptions())
		circle := typeNamed(t, m, "Circle")
		layout := m.ObjectLayout(circle.ID)
		require.Equal(t, []string{"op", "radius"}, fieldNames(layout))
		require.True(t, layout[0].TablePtr)
		require.Equal(t, "_Circle_VT*", layout[0].Type)
		require.Equal(t, circle.ID, layout[1].Owner)
	})

	t.Run("struct hierarchy", func(t *testing.T) {
		m, _ := analyzeString(t, oocBlock(
			"struct Point {", "    int x;", "    int y;", "};",
			"struct Point3D(Point) {", "    int z;", "};",
		), DefaultOptions())
		require.Equal(t, []string{"x", "y"}, fieldNames(m.ObjectLayout(typeNamed(t, m, "Point").ID)))
		layout := m.ObjectLayout(typeNamed(t, m, "Point3D").ID)
		require.Equal(t, []string{"x", "y", "z"}, fieldNames(layout))
		for _, f := range layout {
			require.False(t, f.TablePtr)
		}
	})

	t.Run("prefix property", func(t *testing.T) {
		m, _ := analyzeString(t, oocBlock(
			"class Base {",
			"    int a;",
			"    char_u *b;",
			"    array(int) c;",
			"    void f();",
			"};",
			"class Derived(Base) {",
			"    Base* parent;",
			"    void f();",
			"};",
			"class Leaf(Derived) {",
			"    int d[4];",
			"};",
		), DefaultOptions())
		for _, pair := range [][2]string{{"Base", "Derived"}, {"Derived", "Leaf"}, {"Base", "Leaf"}} {
			base := m.ObjectLayout(typeNamed(t, m, pair[0]).ID)
			derived := m.ObjectLayout(typeNamed(t, m, pair[1]).ID)
			require.GreaterOrEqual(t, len(derived), len(base))
			require.Equal(t, base[0].Name, derived[0].Name)
			for i := 1; i < len(base); i++ {
				require.Equal(t, base[i].Name, derived[i].Name, "%s in %s", base[i].Name, pair[1])
				require.Equal(t, base[i].Type, derived[i].Type)
				require.Equal(t, base[i].Suffix, derived[i].Suffix)
			}
		}
	})

	t.Run("type rendering", func(t *testing.T) {
		m, _ := analyzeString(t, oocBlock(
			"class Node {",
			"    Node *next;",
			"    array(Node) children;",
			"    char_u label[8];",
			"};",
		), DefaultOptions())
		layout := m.ObjectLayout(typeNamed(t, m, "Node").ID)
		require.Equal(t, "struct _Node_o*", layout[1].Type)
		require.Equal(t, "garray_T", layout[2].Type)
		require.Equal(t, "char_u", layout[3].Type)
		require.Equal(t, "[8]", layout[3].Suffix)
	})

	t.Run("struct keyword before known type", func(t *testing.T) {
		m, bag := analyzeString(t, oocBlock(
			"struct Point {",
			"    int x;",
			"};",
			"struct Shape {",
			"    struct Point origin;",
			"    struct Point *next;",
			"    struct stat info;",
			"};",
		), DefaultOptions())
		require.Zero(t, bag.Len())
		shape := typeNamed(t, m, "Shape")
		layout := m.ObjectLayout(shape.ID)
		require.Equal(t, "struct _Point_o", layout[0].Type)
		require.Equal(t, "struct _Point_o*", layout[1].Type)
		require.Equal(t, "struct stat", layout[2].Type)
		require.Equal(t, typeNamed(t, m, "Point").ID, shape.Members[0].Embedded)
		require.Equal(t, "Point_T*", m.bodyType("struct Point *"))
	})
}

func TestTableLayout(t *testing.T) {
	m, _ := analyzeString(t, oocBlock(
		"class Item {",
		"    void init();",
		"    char_u* text(int col);",
		"    Item* clone(Item* other, int deep);",
		"};",
		"class Sub(Item) {",
		"    char_u* text(int col);",
		"};",
	), DefaultOptions())
	fields := m.TableLayout(typeNamed(t, m, "Sub").ID)
	require.Len(t, fields, 2)
	require.Equal(t, "char_u* (*text)(void* _self, int col);", fields[0].Decl)
	require.Equal(t, "struct _Item_o* (*clone)(void* _self, struct _Item_o* other, int deep);", fields[1].Decl)
	require.Equal(t, typeNamed(t, m, "Sub").ID, fields[0].Owner)
}
