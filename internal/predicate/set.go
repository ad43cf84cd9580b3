package predicate

import (
	"fmt"
	"sort"
	"strings"
)

// Item is one member of a character selection: a single rune when
// Min == Max, an inclusive range otherwise.
type Item struct {
	Min rune `json:"min"`
	Max rune `json:"max"`
}

// Single returns an item holding only r.
func Single(r rune) Item { return Item{Min: r, Max: r} }

// Span returns an inclusive range item. It fails with ErrInvalidArgument when
// min > max.
func Span(min, max rune) (Item, error) {
	if min > max {
		return Item{}, fmt.Errorf("%w: range %q-%q has min > max", ErrInvalidArgument, min, max)
	}
	return Item{Min: min, Max: max}, nil
}

// Contains reports whether r lies within the item.
func (it Item) Contains(r rune) bool { return r >= it.Min && r <= it.Max }

func (it Item) String() string {
	if it.Min == it.Max {
		return quoteRune(it.Min, true)
	}
	return quoteRune(it.Min, true) + "-" + quoteRune(it.Max, true)
}

type setPredicate struct {
	items    []Item
	inverted bool
}

// Set matches any rune covered by items. Items are sorted and overlapping or
// adjacent items are merged, so the canonical string does not depend on the
// order they were given in.
func Set(items ...Item) (Predicate, error) {
	return newSet(items, false)
}

// NotSet matches any rune not covered by items.
func NotSet(items ...Item) (Predicate, error) {
	return newSet(items, true)
}

func newSet(items []Item, inverted bool) (Predicate, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty character selection", ErrInvalidArgument)
	}
	for _, it := range items {
		if it.Min > it.Max {
			return nil, fmt.Errorf("%w: range %q-%q has min > max", ErrInvalidArgument, it.Min, it.Max)
		}
	}
	return setPredicate{items: normalizeItems(items), inverted: inverted}, nil
}

func normalizeItems(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Min != sorted[j].Min {
			return sorted[i].Min < sorted[j].Min
		}
		return sorted[i].Max < sorted[j].Max
	})

	merged := sorted[:1]
	for _, it := range sorted[1:] {
		last := &merged[len(merged)-1]
		if it.Min <= last.Max+1 {
			if it.Max > last.Max {
				last.Max = it.Max
			}
			continue
		}
		merged = append(merged, it)
	}
	return merged
}

func (p setPredicate) Matches(r rune) bool {
	for _, it := range p.items {
		if it.Contains(r) {
			return !p.inverted
		}
	}
	return p.inverted
}

func (p setPredicate) Kind() Kind { return KindSet }
func (setPredicate) sealed()      {}

func (p setPredicate) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if p.inverted {
		b.WriteByte('^')
	}
	for _, it := range p.items {
		b.WriteString(it.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Items returns the normalized items of a Set or NotSet predicate together
// with its inversion flag. ok is false for other kinds.
func Items(p Predicate) (items []Item, inverted bool, ok bool) {
	s, isSet := p.(setPredicate)
	if !isSet {
		return nil, false, false
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, s.inverted, true
}
