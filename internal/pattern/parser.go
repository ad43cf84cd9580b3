package pattern

import (
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/chartrie/internal/predicate"
	"github.com/roach88/chartrie/internal/trie"
)

// Resolver returns the op for a named reference.
type Resolver func(name string) (*trie.Op, error)

// Option configures Parse.
type Option func(*config)

type config struct {
	ignoreCase bool
	resolve    Resolver
}

// WithIgnoreCase makes literal runes match either case.
func WithIgnoreCase() Option {
	return func(c *config) { c.ignoreCase = true }
}

// WithResolver enables {name} references. Each reference becomes
// trie.Embedded(name, op).
func WithResolver(r Resolver) Option {
	return func(c *config) { c.resolve = r }
}

// Parse compiles expr into an op tree.
func Parse(expr string, opts ...Option) (*trie.Op, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	text := norm.NFC.String(expr)
	p := &parser{text: text, src: []rune(text), cfg: cfg}

	op, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf(p.pos, "unmatched )")
	}
	return op, nil
}

// MustParse is like Parse but panics on error.
// Intended for package-level patterns and tests.
func MustParse(expr string, opts ...Option) *trie.Op {
	op, err := Parse(expr, opts...)
	if err != nil {
		panic(err)
	}
	return op
}

type parser struct {
	text string
	src  []rune
	pos  int
	cfg  config
}

// item is one element of a sequence. Literal items without postfix
// operators are later merged into String ops.
type item struct {
	op      *trie.Op
	literal bool
	r       rune
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekIs(r rune) bool { return !p.eof() && p.src[p.pos] == r }

func (p *parser) errorf(offset int, msg string) *ParseError {
	return &ParseError{Pattern: p.text, Offset: offset, Message: msg}
}

func (p *parser) wrapf(offset int, msg string, err error) *ParseError {
	return &ParseError{Pattern: p.text, Offset: offset, Message: msg, Err: err}
}

func (p *parser) parseAlternation() (*trie.Op, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	alts := []*trie.Op{first}
	for p.peekIs('|') {
		p.pos++
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	if len(alts) == 1 {
		return first, nil
	}
	return trie.Or(alts...), nil
}

func (p *parser) parseSequence() (*trie.Op, error) {
	var items []item
	for !p.eof() && !p.peekIs('|') && !p.peekIs(')') {
		it, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		switch {
		case len(p.src) == 0:
			return nil, p.errorf(0, "empty pattern")
		case p.peekIs('|') || (p.pos > 0 && p.src[p.pos-1] == '|'):
			return nil, p.errorf(p.pos, "dangling |")
		case p.peekIs(')'):
			return nil, p.errorf(p.pos, "empty group")
		default:
			return nil, p.errorf(p.pos, "missing expression")
		}
	}

	ops := p.mergeLiterals(items)
	if len(ops) == 1 {
		return ops[0], nil
	}
	return trie.And(ops...), nil
}

// mergeLiterals turns runs of two or more literal items into String ops.
func (p *parser) mergeLiterals(items []item) []*trie.Op {
	cs := trie.Sensitive
	if p.cfg.ignoreCase {
		cs = trie.Insensitive
	}

	var ops []*trie.Op
	var run []item
	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			ops = append(ops, run[0].op)
		default:
			text := make([]rune, len(run))
			for i, it := range run {
				text[i] = it.r
			}
			ops = append(ops, trie.String(string(text), cs))
		}
		run = run[:0]
	}
	for _, it := range items {
		if it.literal {
			run = append(run, it)
			continue
		}
		flush()
		ops = append(ops, it.op)
	}
	flush()
	return ops
}

func isPostfix(r rune) bool { return r == '*' || r == '+' || r == '?' }

func (p *parser) parseRepeat() (item, error) {
	if isPostfix(p.src[p.pos]) {
		return item{}, p.errorf(p.pos, "nothing to repeat")
	}
	it, err := p.parseAtom()
	if err != nil {
		return item{}, err
	}
	for !p.eof() && isPostfix(p.src[p.pos]) {
		switch p.src[p.pos] {
		case '*':
			it.op = trie.ZeroOrMore(it.op)
		case '+':
			it.op = trie.OneOrMore(it.op)
		case '?':
			it.op = trie.Optional(it.op)
		}
		it.literal = false
		p.pos++
	}
	return it, nil
}

func (p *parser) parseAtom() (item, error) {
	start := p.pos
	r := p.src[p.pos]
	switch r {
	case '(':
		p.pos++
		inner, err := p.parseAlternation()
		if err != nil {
			return item{}, err
		}
		if !p.peekIs(')') {
			return item{}, p.errorf(start, "missing )")
		}
		p.pos++
		return item{op: inner}, nil

	case '[':
		pred, err := p.parseClass()
		if err != nil {
			return item{}, err
		}
		return item{op: trie.Predicate(pred)}, nil

	case '.':
		p.pos++
		return item{op: trie.Predicate(predicate.Any())}, nil

	case '\\':
		esc, err := p.parseEscape()
		if err != nil {
			return item{}, err
		}
		if esc.class {
			pred, err := classPredicate(esc.items, esc.negated)
			if err != nil {
				return item{}, p.wrapf(start, "invalid class escape", err)
			}
			return item{op: trie.Predicate(pred)}, nil
		}
		return p.literal(esc.r), nil

	case '{':
		if p.cfg.resolve != nil {
			return p.parseReference()
		}
	}

	p.pos++
	return p.literal(r), nil
}

func (p *parser) literal(r rune) item {
	pred := predicate.Char(r)
	if p.cfg.ignoreCase {
		pred = predicate.Fold(r)
	}
	return item{op: trie.Predicate(pred), literal: true, r: r}
}

func (p *parser) parseReference() (item, error) {
	start := p.pos
	p.pos++
	nameStart := p.pos
	for !p.eof() && p.src[p.pos] != '}' {
		r := p.src[p.pos]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return item{}, p.errorf(p.pos, "invalid character in reference name")
		}
		p.pos++
	}
	if p.eof() {
		return item{}, p.errorf(start, "missing }")
	}
	name := string(p.src[nameStart:p.pos])
	p.pos++
	if name == "" {
		return item{}, p.errorf(start, "empty reference name")
	}

	op, err := p.cfg.resolve(name)
	if err != nil {
		return item{}, p.wrapf(start, "cannot resolve {"+name+"}", err)
	}
	if op == nil {
		return item{}, p.errorf(start, "unknown reference {"+name+"}")
	}
	return item{op: trie.Embedded(name, op)}, nil
}

func (p *parser) parseClass() (predicate.Predicate, error) {
	open := p.pos
	p.pos++

	inverted := false
	if p.peekIs('^') {
		inverted = true
		p.pos++
	}

	var items []predicate.Item
	for {
		if p.eof() {
			return nil, p.errorf(open, "missing ]")
		}
		if p.src[p.pos] == ']' {
			if len(items) == 0 {
				return nil, p.errorf(open, "empty character class")
			}
			p.pos++
			break
		}

		loPos := p.pos
		lo, class, err := p.classAtom()
		if err != nil {
			return nil, err
		}
		if class != nil {
			items = append(items, class...)
			continue
		}

		if p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] != ']' {
			p.pos++
			hi, class, err := p.classAtom()
			if err != nil {
				return nil, err
			}
			if class != nil {
				return nil, p.errorf(loPos, "class escape cannot end a range")
			}
			span, err := predicate.Span(lo, hi)
			if err != nil {
				return nil, p.wrapf(loPos, "invalid range", err)
			}
			items = append(items, span)
			continue
		}
		items = append(items, predicate.Single(lo))
	}

	if p.cfg.ignoreCase {
		items = foldItems(items)
	}
	pred, err := classPredicate(items, inverted)
	if err != nil {
		return nil, p.wrapf(open, "invalid character class", err)
	}
	return pred, nil
}

// classAtom reads one rune, or the items of a positive class escape.
func (p *parser) classAtom() (rune, []predicate.Item, error) {
	if p.src[p.pos] != '\\' {
		r := p.src[p.pos]
		p.pos++
		return r, nil, nil
	}
	start := p.pos
	esc, err := p.parseEscape()
	if err != nil {
		return 0, nil, err
	}
	if esc.class {
		if esc.negated {
			return 0, nil, p.errorf(start, "negated class escape inside character class")
		}
		return 0, esc.items, nil
	}
	return esc.r, nil, nil
}

func classPredicate(items []predicate.Item, inverted bool) (predicate.Predicate, error) {
	if inverted {
		return predicate.NotSet(items...)
	}
	return predicate.Set(items...)
}

// foldItems adds the upper and lower case forms of every rune the items
// cover, matching predicate.Fold. Only runes in unicode.CaseRanges have
// other forms, so wide ranges stay cheap.
func foldItems(items []predicate.Item) []predicate.Item {
	out := make([]predicate.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
		for _, cr := range unicode.CaseRanges {
			lo, hi := max(it.Min, rune(cr.Lo)), min(it.Max, rune(cr.Hi))
			for r := lo; r <= hi; r++ {
				for _, f := range [...]rune{unicode.ToUpper(r), unicode.ToLower(r)} {
					if !it.Contains(f) {
						out = append(out, predicate.Single(f))
					}
				}
			}
		}
	}
	return out
}

// escape is a decoded backslash sequence.
type escape struct {
	r       rune
	class   bool
	negated bool
	items   []predicate.Item
}

var (
	digitItems = []predicate.Item{{Min: '0', Max: '9'}}
	wordItems  = []predicate.Item{{Min: '0', Max: '9'}, {Min: 'A', Max: 'Z'}, predicate.Single('_'), {Min: 'a', Max: 'z'}}
	spaceItems = []predicate.Item{{Min: '\t', Max: '\r'}, predicate.Single(' ')}
)

func (p *parser) parseEscape() (escape, error) {
	start := p.pos
	p.pos++
	if p.eof() {
		return escape{}, p.errorf(start, "trailing backslash")
	}
	c := p.src[p.pos]
	p.pos++

	switch c {
	case 'd':
		return escape{class: true, items: digitItems}, nil
	case 'D':
		return escape{class: true, negated: true, items: digitItems}, nil
	case 'w':
		return escape{class: true, items: wordItems}, nil
	case 'W':
		return escape{class: true, negated: true, items: wordItems}, nil
	case 's':
		return escape{class: true, items: spaceItems}, nil
	case 'S':
		return escape{class: true, negated: true, items: spaceItems}, nil
	case 'n':
		return escape{r: '\n'}, nil
	case 'r':
		return escape{r: '\r'}, nil
	case 't':
		return escape{r: '\t'}, nil
	case 'f':
		return escape{r: '\f'}, nil
	case 'v':
		return escape{r: '\v'}, nil
	case '0':
		return escape{r: 0}, nil
	case 'x':
		return p.hexEscape(start, 2)
	case 'u':
		return p.hexEscape(start, 4)
	default:
		return escape{r: c}, nil
	}
}

func (p *parser) hexEscape(start, digits int) (escape, error) {
	if p.pos+digits > len(p.src) {
		return escape{}, p.errorf(start, "incomplete hex escape")
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+digits]), 16, 32)
	if err != nil {
		return escape{}, p.errorf(start, "invalid hex escape")
	}
	p.pos += digits
	return escape{r: rune(v)}, nil
}
