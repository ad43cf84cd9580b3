package trie

import (
	"fmt"
	"strings"

	"github.com/roach88/chartrie/internal/predicate"
)

// Kind identifies an operator variant.
type Kind int

const (
	KindPredicate Kind = iota
	KindString
	KindAnd
	KindOr
	KindOptional
	KindOneOrMore
	KindZeroOrMore
	KindEmbedded
)

var kindNames = [...]string{
	KindPredicate:  "predicate",
	KindString:     "string",
	KindAnd:        "and",
	KindOr:         "or",
	KindOptional:   "optional",
	KindOneOrMore:  "one_or_more",
	KindZeroOrMore: "zero_or_more",
	KindEmbedded:   "embedded",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// CaseSensitivity controls how String ops turn characters into predicates.
type CaseSensitivity int

const (
	Sensitive CaseSensitivity = iota
	Insensitive
)

// Op is a node of the construction algebra. Ops are immutable once built
// and may be shared between trees and appended any number of times.
type Op struct {
	kind     Kind
	pred     predicate.Predicate
	text     string
	cs       CaseSensitivity
	name     string
	children []*Op
}

// Predicate appends a single edge labeled p.
func Predicate(p predicate.Predicate) *Op {
	if p == nil {
		panic("trie: Predicate called with nil predicate")
	}
	return &Op{kind: KindPredicate, pred: p}
}

// String appends one edge per rune of text. With Insensitive each rune is
// matched case-insensitively.
func String(text string, cs CaseSensitivity) *Op {
	return &Op{kind: KindString, text: text, cs: cs}
}

// And composes ops in sequence.
func And(ops ...*Op) *Op {
	return &Op{kind: KindAnd, children: checkChildren("And", ops)}
}

// Or applies every op to the same starting frontier.
func Or(ops ...*Op) *Op {
	return &Op{kind: KindOr, children: checkChildren("Or", ops)}
}

// Optional applies op or skips it.
func Optional(op *Op) *Op {
	return &Op{kind: KindOptional, children: checkChildren("Optional", []*Op{op})}
}

// OneOrMore repeats op at least once.
func OneOrMore(op *Op) *Op {
	return &Op{kind: KindOneOrMore, children: checkChildren("OneOrMore", []*Op{op})}
}

// ZeroOrMore repeats op any number of times, including none.
func ZeroOrMore(op *Op) *Op {
	return &Op{kind: KindZeroOrMore, children: checkChildren("ZeroOrMore", []*Op{op})}
}

// Embedded wraps op under a name. It builds exactly what op builds and only
// changes the textual label.
func Embedded(name string, op *Op) *Op {
	return &Op{kind: KindEmbedded, name: name, children: checkChildren("Embedded", []*Op{op})}
}

func checkChildren(ctor string, ops []*Op) []*Op {
	out := make([]*Op, len(ops))
	for i, op := range ops {
		if op == nil {
			panic(fmt.Sprintf("trie: %s operand %d is nil", ctor, i))
		}
		out[i] = op
	}
	return out
}

// Kind returns the operator variant.
func (o *Op) Kind() Kind { return o.kind }

// Children returns the operands of composite ops.
func (o *Op) Children() []*Op {
	out := make([]*Op, len(o.children))
	copy(out, o.children)
	return out
}

// Name returns the name of an Embedded op.
func (o *Op) Name() string { return o.name }

// String renders a textual label in pattern syntax. Embedded ops render as
// their name in braces.
func (o *Op) String() string {
	switch o.kind {
	case KindPredicate:
		return o.pred.String()
	case KindString:
		var b strings.Builder
		for _, r := range o.text {
			b.WriteString(runePredicate(r, o.cs).String())
		}
		return b.String()
	case KindAnd:
		parts := make([]string, len(o.children))
		for i, c := range o.children {
			parts[i] = c.String()
		}
		return strings.Join(parts, "")
	case KindOr:
		parts := make([]string, len(o.children))
		for i, c := range o.children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, "|") + ")"
	case KindOptional:
		return o.children[0].postfixOperand() + "?"
	case KindOneOrMore:
		return o.children[0].postfixOperand() + "+"
	case KindZeroOrMore:
		return o.children[0].postfixOperand() + "*"
	case KindEmbedded:
		return "{" + o.name + "}"
	default:
		return o.kind.String()
	}
}

// postfixOperand wraps anything that is not a single atom in a group.
func (o *Op) postfixOperand() string {
	s := o.String()
	switch o.kind {
	case KindPredicate:
		if o.pred.Kind() == predicate.KindOr {
			return "(" + s + ")"
		}
		return s
	case KindOr, KindEmbedded:
		return s
	case KindString:
		if len([]rune(o.text)) == 1 {
			return s
		}
	}
	return "(" + s + ")"
}

func runePredicate(r rune, cs CaseSensitivity) predicate.Predicate {
	if cs == Insensitive {
		return predicate.Fold(r)
	}
	return predicate.Char(r)
}
