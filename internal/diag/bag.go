package diag

import (
	"math"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics up to a fixed limit.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag returns a bag holding at most max diagnostics. Values that do not
// fit the limit type saturate.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends d. It returns false when the limit is reached; the drop is
// still counted.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped reports how many diagnostics did not fit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the collected diagnostics. The slice aliases the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic has error severity.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasCode reports whether a diagnostic with code c was collected.
func (b *Bag) HasCode(c Code) bool {
	for i := range b.items {
		if b.items[i].Code == c {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, line, severity (desc) and code so that
// output is stable regardless of the phase that reported first. Files rank
// in the order given; files not listed follow, by name.
func (b *Bag) Sort(files ...string) {
	rank := make(map[string]int, len(files))
	for i, f := range files {
		if _, ok := rank[f]; !ok {
			rank[f] = i
		}
	}
	fileRank := func(f string) int {
		if r, ok := rank[f]; ok {
			return r
		}
		return len(files)
	}
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Pos.File != dj.Pos.File {
			ri, rj := fileRank(di.Pos.File), fileRank(dj.Pos.File)
			if ri != rj {
				return ri < rj
			}
			return di.Pos.File < dj.Pos.File
		}
		if di.Pos.Line != dj.Pos.Line {
			return di.Pos.Line < dj.Pos.Line
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
