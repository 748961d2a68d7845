package generator

import (
	"regexp"
	"strings"

	"github.com/calumari/oocgen/internal/diag"
)

var rxArray = regexp.MustCompile(`^\s*array\s*\((.*)\)`)

// typeResolver links base references and classifies members. It runs once,
// after the whole declaration stream is in the store, so forward references
// are legal.
type typeResolver struct {
	store *Store
	syms  symbolTable
	opts  Options
	r     diag.Reporter
}

func (tr *typeResolver) resolve() {
	ids := tr.store.TypeIDs()
	for _, id := range ids {
		tr.resolveBase(tr.store.mustType(id))
	}
	tr.breakCycles(ids)
	for _, id := range ids {
		td := tr.store.mustType(id)
		for i := range td.Members {
			tr.classifyMember(&td.Members[i])
		}
	}
}

func (tr *typeResolver) resolveBase(td *TypeDecl) {
	name := strings.TrimSpace(td.BaseName)
	switch name {
	case "":
		if td.Kind != KindClass || td.Name == tr.opts.RootTypeName {
			return
		}
		// the implicit root only applies when the input declares it
		root, ok := tr.syms.lookup(tr.opts.RootTypeName)
		if !ok || root == td.ID || tr.store.mustType(root).Kind != KindClass {
			return
		}
		td.Base = root
		return
	case baseSentinel:
		return
	}

	id, ok := tr.syms.lookup(name)
	if !ok {
		diag.Reportf(tr.r, diag.UnknownBaseClass, td.Pos, td.Name, "unknown base class %s", name)
		return
	}
	if base := tr.store.mustType(id); base.Kind != td.Kind {
		diag.Reportf(tr.r, diag.IncompatibleBaseKind, td.Pos, td.Name,
			"%s %s cannot derive from %s %s; base ignored", td.Kind, td.Name, base.Kind, base.Name)
		return
	}
	td.Base = id
}

// breakCycles clears the base of the first declaration (in encounter order)
// found on each inheritance cycle.
func (tr *typeResolver) breakCycles(ids []TypeID) {
	for _, id := range ids {
		td := tr.store.mustType(id)
		seen := map[TypeID]bool{id: true}
		path := []string{td.Name}
		for cur := td.Base; cur != NoType; cur = tr.store.mustType(cur).Base {
			path = append(path, tr.store.mustType(cur).Name)
			if cur == id {
				diag.Reportf(tr.r, diag.InheritanceCycle, td.Pos, td.Name,
					"inheritance cycle %s; base of %s ignored", strings.Join(path, " -> "), td.Name)
				td.Base = NoType
				break
			}
			if seen[cur] {
				break
			}
			seen[cur] = true
		}
	}
}

func (tr *typeResolver) classifyMember(m *Member) {
	if mo := rxArray.FindStringSubmatch(m.Type); mo != nil {
		m.IsArray = true
		elem := strings.TrimSpace(mo[1])
		m.ElemType = elem
		if id, ok := tr.syms.lookup(elem); ok {
			m.ElemType = tr.store.mustType(id).ObjectType()
		}
		return
	}
	for _, tok := range strings.Fields(normalizeDecl(m.Type)) {
		name, ptr := splitPointer(tok)
		id, ok := tr.syms.lookup(name)
		if !ok {
			continue
		}
		if ptr == 0 {
			m.Embedded = id
		}
		return
	}
}
