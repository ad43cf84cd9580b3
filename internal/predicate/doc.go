// Package predicate provides single-character tests used as edge labels in
// character automata.
//
// A Predicate answers Matches(r) for one rune, renders a canonical string
// (the same string the formatter prints on an edge) and takes part in a total
// order so that parallel edges can be grouped and deduplicated.
//
// The set of variants is closed:
//
//	Char('a')        a
//	NotChar('a')     [^a]
//	Fold('a')        [Aa]
//	Range('a', 'd')  [a-d]
//	Set(items...)    [0-9_a-z]   (NotSet renders [^...])
//	Or(p, q)         a|b
//	Any()            .
//
// Construction never mutates anything and is the only place a predicate can
// fail: Range and the Item helpers return ErrInvalidArgument when min > max.
package predicate
