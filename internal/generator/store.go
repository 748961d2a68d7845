package generator

import (
	"fmt"

	"github.com/calumari/oocgen/internal/diag"
)

// Store owns every declaration of a run, in the order they were seen.
// TypeDecls live in an arena addressed by TypeID; slot 0 is reserved for
// NoType.
type Store struct {
	decls []Declaration
	types []TypeDecl
}

func NewStore() *Store {
	return &Store{types: make([]TypeDecl, 1, 16)}
}

func (s *Store) AddConstant(pos diag.Pos, name, value string) {
	s.decls = append(s.decls, Declaration{Kind: DeclConstant, Pos: pos, Name: name, Value: value})
}

func (s *Store) AddTypedef(pos diag.Pos, text string) {
	s.decls = append(s.decls, Declaration{Kind: DeclTypedef, Pos: pos, Value: text})
}

// AddType copies td into the arena and returns its id. An empty prefix
// defaults to the first four characters of the name.
func (s *Store) AddType(td TypeDecl) TypeID {
	id := TypeID(len(s.types))
	td.ID = id
	td.Base = NoType
	if td.Prefix == "" {
		td.Prefix = defaultPrefix(td.Name)
	}
	s.types = append(s.types, td)

	kind := DeclClass
	if td.Kind == KindStruct {
		kind = DeclStruct
	}
	s.decls = append(s.decls, Declaration{Kind: kind, Pos: td.Pos, Name: td.Name, Type: id})
	return id
}

// Type returns the declaration behind id, or nil for NoType and ids from
// another store.
func (s *Store) Type(id TypeID) *TypeDecl {
	if id == NoType || int(id) >= len(s.types) {
		return nil
	}
	return &s.types[id]
}

func (s *Store) mustType(id TypeID) *TypeDecl {
	td := s.Type(id)
	if td == nil {
		panic(fmt.Sprintf("generator: unknown type id %d", id))
	}
	return td
}

// Decls returns the encounter-ordered declaration stream. The slice aliases
// the store.
func (s *Store) Decls() []Declaration { return s.decls }

// TypeIDs lists every TypeDecl in encounter order.
func (s *Store) TypeIDs() []TypeID {
	ids := make([]TypeID, 0, len(s.types)-1)
	for i := 1; i < len(s.types); i++ {
		ids = append(ids, TypeID(i))
	}
	return ids
}

// Constants lists constant declarations in encounter order.
func (s *Store) Constants() []Declaration {
	var out []Declaration
	for _, d := range s.decls {
		if d.Kind == DeclConstant {
			out = append(out, d)
		}
	}
	return out
}

func defaultPrefix(name string) string {
	if len(name) <= 4 {
		return name
	}
	return name[:4]
}

// symbolTable maps type names to the first TypeDecl declared with that name.
type symbolTable map[string]TypeID

func newSymbolTable(s *Store, r diag.Reporter) symbolTable {
	syms := make(symbolTable, len(s.types))
	for _, id := range s.TypeIDs() {
		td := s.mustType(id)
		prev, ok := syms[td.Name]
		if !ok {
			syms[td.Name] = id
			continue
		}
		if first := s.mustType(prev); first.Variant == "" && td.Variant == "" {
			diag.Reportf(r, diag.DuplicateTypeName, td.Pos, td.Name,
				"type %s already declared at %s; lookups use the first declaration", td.Name, first.Pos)
		}
	}
	return syms
}

func (st symbolTable) lookup(name string) (TypeID, bool) {
	id, ok := st[name]
	return id, ok
}
