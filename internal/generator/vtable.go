package generator

// vtableBuilder computes dispatch slots per class, base first. Results are
// memoized; the store must not change after resolution.
type vtableBuilder struct {
	store *Store
	memo  map[TypeID][]Slot
}

func newVTableBuilder(s *Store) *vtableBuilder {
	return &vtableBuilder{store: s, memo: make(map[TypeID][]Slot)}
}

// slots returns the ordered dispatch slots of id. An override keeps the
// position of the slot it replaces; init never gets a slot because the
// table pointer is only valid once init has run. Structs have no slots.
func (b *vtableBuilder) slots(id TypeID) []Slot {
	if cached, ok := b.memo[id]; ok {
		return cached
	}
	td := b.store.Type(id)
	if td == nil || td.Kind != KindClass {
		return nil
	}
	var out []Slot
	if td.Base != NoType {
		out = append(out, b.slots(td.Base)...)
	}
	for _, m := range td.Methods {
		if m.Name == methodInit {
			continue
		}
		if i := slotIndex(out, m.Name); i >= 0 {
			out[i].Owner = id
			continue
		}
		out = append(out, Slot{Name: m.Name, Owner: id, Introducer: id, Method: m})
	}
	b.memo[id] = out
	return out
}

func slotIndex(slots []Slot, name string) int {
	for i := range slots {
		if slots[i].Name == name {
			return i
		}
	}
	return -1
}
