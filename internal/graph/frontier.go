package graph

// Frontier is an insertion-ordered set of nodes: the current end(s) of
// construction.
//
// The zero value is an empty frontier ready to use.
type Frontier struct {
	ids   []NodeID
	index map[NodeID]struct{}
}

// NewFrontier returns a frontier holding ids, duplicates dropped.
func NewFrontier(ids ...NodeID) Frontier {
	var f Frontier
	for _, id := range ids {
		f.Add(id)
	}
	return f
}

// Add inserts id and reports whether it was not already present.
func (f *Frontier) Add(id NodeID) bool {
	if f.index == nil {
		f.index = make(map[NodeID]struct{})
	}
	if _, ok := f.index[id]; ok {
		return false
	}
	f.index[id] = struct{}{}
	f.ids = append(f.ids, id)
	return true
}

// AddAll inserts every member of other, keeping other's order.
func (f *Frontier) AddAll(other Frontier) {
	for _, id := range other.ids {
		f.Add(id)
	}
}

// Contains reports membership.
func (f Frontier) Contains(id NodeID) bool {
	_, ok := f.index[id]
	return ok
}

// Len returns the number of members.
func (f Frontier) Len() int {
	return len(f.ids)
}

// IDs returns the members in insertion order.
func (f Frontier) IDs() []NodeID {
	out := make([]NodeID, len(f.ids))
	copy(out, f.ids)
	return out
}

// Union returns a new frontier with the members of every argument in order.
func Union(fs ...Frontier) Frontier {
	var out Frontier
	for _, f := range fs {
		out.AddAll(f)
	}
	return out
}

// Equal reports whether f and other hold the same members, ignoring order.
func (f Frontier) Equal(other Frontier) bool {
	if f.Len() != other.Len() {
		return false
	}
	for _, id := range f.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
