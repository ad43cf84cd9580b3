package predicate

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies a predicate variant. The numeric order is the primary key
// of Compare.
type Kind int

const (
	KindChar Kind = iota
	KindFold
	KindRange
	KindSet
	KindOr
	KindAny
)

var kindNames = [...]string{
	KindChar:  "char",
	KindFold:  "fold",
	KindRange: "range",
	KindSet:   "set",
	KindOr:    "or",
	KindAny:   "any",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Predicate is a pure test over a single rune.
//
// Implementations are immutable value types defined in this package only.
type Predicate interface {
	// Matches reports whether r satisfies the predicate.
	Matches(r rune) bool

	// String returns the canonical textual form.
	String() string

	// Kind returns the variant.
	Kind() Kind

	sealed()
}

// Compare orders predicates by kind, then by canonical string.
// It returns -1, 0 or +1.
func Compare(a, b Predicate) int {
	if a.Kind() != b.Kind() {
		if a.Kind() < b.Kind() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// Equal reports whether a and b are the same predicate.
func Equal(a, b Predicate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Compare(a, b) == 0
}

// Key returns a string that is equal for two predicates exactly when Equal
// holds. Useful as a map key.
func Key(p Predicate) string {
	return p.Kind().String() + ":" + p.String()
}

// ---------------------------------------------------------------------------
// Exact character

type charPredicate struct {
	r       rune
	negated bool
}

// Char matches exactly r.
func Char(r rune) Predicate { return charPredicate{r: r} }

// NotChar matches every rune except r.
func NotChar(r rune) Predicate { return charPredicate{r: r, negated: true} }

func (p charPredicate) Matches(r rune) bool { return (r == p.r) != p.negated }
func (p charPredicate) Kind() Kind          { return KindChar }
func (charPredicate) sealed()               {}

func (p charPredicate) String() string {
	if p.negated {
		return "[^" + quoteRune(p.r, true) + "]"
	}
	return quoteRune(p.r, false)
}

// ---------------------------------------------------------------------------
// Case-insensitive character

type foldPredicate struct {
	upper rune
	lower rune
}

// Fold matches the upper and lower case forms of r. If r has no case
// distinction Fold returns Char(r).
func Fold(r rune) Predicate {
	upper, lower := unicode.ToUpper(r), unicode.ToLower(r)
	if upper == lower {
		return Char(r)
	}
	return foldPredicate{upper: upper, lower: lower}
}

func (p foldPredicate) Matches(r rune) bool {
	return r == p.upper || r == p.lower || unicode.ToLower(r) == p.lower
}

func (p foldPredicate) Kind() Kind { return KindFold }
func (foldPredicate) sealed()      {}

func (p foldPredicate) String() string {
	return "[" + quoteRune(p.upper, true) + quoteRune(p.lower, true) + "]"
}

// ---------------------------------------------------------------------------
// Range

type rangePredicate struct {
	item Item
}

// Range matches runes in [min, max] inclusive. A range with min > max is
// rejected with ErrInvalidArgument; bounds are never swapped.
func Range(min, max rune) (Predicate, error) {
	item, err := Span(min, max)
	if err != nil {
		return nil, err
	}
	return rangePredicate{item: item}, nil
}

// MustRange is like Range but panics on invalid bounds.
// Intended for package-level tables and tests.
func MustRange(min, max rune) Predicate {
	p, err := Range(min, max)
	if err != nil {
		panic(err)
	}
	return p
}

func (p rangePredicate) Matches(r rune) bool { return p.item.Contains(r) }
func (p rangePredicate) Kind() Kind          { return KindRange }
func (rangePredicate) sealed()               {}

func (p rangePredicate) String() string {
	return "[" + quoteRune(p.item.Min, true) + "-" + quoteRune(p.item.Max, true) + "]"
}

// ---------------------------------------------------------------------------
// Logical OR

type orPredicate struct {
	operands []Predicate
}

// Or matches when any operand matches. Nested Or operands are flattened and
// a single operand is returned unchanged. Or panics on nil operands.
func Or(operands ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(operands))
	for i, op := range operands {
		if op == nil {
			panic(fmt.Sprintf("predicate: Or operand %d is nil", i))
		}
		if inner, ok := op.(orPredicate); ok {
			flat = append(flat, inner.operands...)
			continue
		}
		flat = append(flat, op)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	if len(flat) == 0 {
		panic("predicate: Or requires at least one operand")
	}
	return orPredicate{operands: flat}
}

func (p orPredicate) Matches(r rune) bool {
	for _, op := range p.operands {
		if op.Matches(r) {
			return true
		}
	}
	return false
}

func (p orPredicate) Kind() Kind { return KindOr }
func (orPredicate) sealed()      {}

func (p orPredicate) String() string {
	parts := make([]string, len(p.operands))
	for i, op := range p.operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, "|")
}

// Operands returns the operands of an Or predicate, or nil for other kinds.
func Operands(p Predicate) []Predicate {
	if or, ok := p.(orPredicate); ok {
		out := make([]Predicate, len(or.operands))
		copy(out, or.operands)
		return out
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wildcard

type anyPredicate struct{}

// Any matches every rune.
func Any() Predicate { return anyPredicate{} }

func (anyPredicate) Matches(rune) bool { return true }
func (anyPredicate) Kind() Kind        { return KindAny }
func (anyPredicate) String() string    { return "." }
func (anyPredicate) sealed()           {}

// ---------------------------------------------------------------------------
// Rendering

const (
	metaOutside = `\.[]()|*+?{}^$`
	metaInside  = `\]^-[`
)

// quoteRune renders r the way the pattern parser reads it back.
func quoteRune(r rune, inClass bool) string {
	switch r {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	}
	meta := metaOutside
	if inClass {
		meta = metaInside
	}
	if strings.ContainsRune(meta, r) {
		return `\` + string(r)
	}
	if !unicode.IsPrint(r) {
		if r < 0x100 {
			return fmt.Sprintf(`\x%02x`, r)
		}
		if r <= 0xFFFF {
			return fmt.Sprintf(`\u%04x`, r)
		}
	}
	return string(r)
}
