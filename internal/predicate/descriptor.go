package predicate

import "fmt"

// Descriptor is the serializable form of a Predicate.
//
// Only the fields relevant to Kind are set:
//
//	char:  Char, Negated
//	fold:  Char (upper case form), Lower
//	range: Min, Max
//	set:   Items, Inverted
//	or:    Operands
//	any:   nothing
type Descriptor struct {
	Kind     string       `json:"kind"`
	Char     rune         `json:"char,omitempty"`
	Lower    rune         `json:"lower,omitempty"`
	Negated  bool         `json:"negated,omitempty"`
	Min      rune         `json:"min,omitempty"`
	Max      rune         `json:"max,omitempty"`
	Items    []Item       `json:"items,omitempty"`
	Inverted bool         `json:"inverted,omitempty"`
	Operands []Descriptor `json:"operands,omitempty"`
}

// Describe converts p to its descriptor.
func Describe(p Predicate) Descriptor {
	switch v := p.(type) {
	case charPredicate:
		return Descriptor{Kind: KindChar.String(), Char: v.r, Negated: v.negated}
	case foldPredicate:
		return Descriptor{Kind: KindFold.String(), Char: v.upper, Lower: v.lower}
	case rangePredicate:
		return Descriptor{Kind: KindRange.String(), Min: v.item.Min, Max: v.item.Max}
	case setPredicate:
		items := make([]Item, len(v.items))
		copy(items, v.items)
		return Descriptor{Kind: KindSet.String(), Items: items, Inverted: v.inverted}
	case orPredicate:
		ops := make([]Descriptor, len(v.operands))
		for i, op := range v.operands {
			ops[i] = Describe(op)
		}
		return Descriptor{Kind: KindOr.String(), Operands: ops}
	case anyPredicate:
		return Descriptor{Kind: KindAny.String()}
	default:
		panic(fmt.Sprintf("predicate: cannot describe %T", p))
	}
}

// Predicate rebuilds the predicate described by d, validating it the same
// way the constructors do.
func (d Descriptor) Predicate() (Predicate, error) {
	switch d.Kind {
	case KindChar.String():
		if d.Negated {
			return NotChar(d.Char), nil
		}
		return Char(d.Char), nil
	case KindFold.String():
		if d.Lower == 0 || d.Char == d.Lower {
			return nil, fmt.Errorf("%w: fold descriptor needs distinct upper and lower forms", ErrInvalidArgument)
		}
		return foldPredicate{upper: d.Char, lower: d.Lower}, nil
	case KindRange.String():
		return Range(d.Min, d.Max)
	case KindSet.String():
		if d.Inverted {
			return NotSet(d.Items...)
		}
		return Set(d.Items...)
	case KindOr.String():
		if len(d.Operands) == 0 {
			return nil, fmt.Errorf("%w: or descriptor has no operands", ErrInvalidArgument)
		}
		ops := make([]Predicate, len(d.Operands))
		for i, od := range d.Operands {
			op, err := od.Predicate()
			if err != nil {
				return nil, fmt.Errorf("operand %d: %w", i, err)
			}
			ops[i] = op
		}
		return Or(ops...), nil
	case KindAny.String():
		return Any(), nil
	default:
		return nil, fmt.Errorf("%w: unknown predicate kind %q", ErrInvalidArgument, d.Kind)
	}
}
