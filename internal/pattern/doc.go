// Package pattern compiles regular-expression syntax into a trie.Op tree.
//
// Supported syntax, lowest precedence first:
//
//	a|b        alternation
//	ab         concatenation
//	a* a+ a?   postfix repetition, binding to the preceding atom or group
//	(...)      grouping
//	[...]      character selection with ranges; [^...] inverts
//	.          any character
//	\d \w \s   classes, and \D \W \S their negations
//	\n \t ...  control escapes, \xHH and \uHHHH code points
//	{name}     named reference, only when a Resolver is configured
//
// Any other escaped rune stands for itself. There are no backreferences,
// anchors or lookaround.
//
// Parsing either returns a complete tree or a *ParseError carrying the rune
// offset of the problem. Input is NFC-normalized first and offsets refer to
// the normalized text.
package pattern
