package main

import "unicode"

// terminateByte is returned by any out-of-range fetch; it is also the
// explicit halt opcode.
const terminateByte byte = 'X'

// Program is the immutable byte sequence that is simultaneously a strandvm
// program's source and its executable. Bounds-checked fetch, with any
// out-of-range read reporting the termination byte, mirrors the bounds
// checking idiom the teacher uses for its (growable, in that case) main
// memory in internals.go's load/stor.
type Program []byte

// byteAt returns the raw byte at loc, or terminateByte if loc lies outside
// [0, len(p)).
func (p Program) byteAt(loc pc) byte {
	if loc < 0 || loc >= pc(len(p)) {
		return terminateByte
	}
	return p[loc]
}

// fixWS normalizes any ASCII whitespace byte down to a single space, per
// spec.md §6: "Whitespace of any form is canonicalized to a single space
// for dispatch."
func fixWS(b byte) byte {
	if unicode.IsSpace(rune(b)) {
		return ' '
	}
	return b
}

// wsByteAt is byteAt with whitespace normalization applied, used by the
// prescanner and the dispatch loop alike.
func (p Program) wsByteAt(loc pc) byte {
	return fixWS(p.byteAt(loc))
}

// literalCache memoizes numeric literal parses keyed by their start PC, so
// that a reparse at a PC already in the cache returns the identical
// (value, next PC) pair it returned the first time (spec.md's "Literal
// idempotence" property).
type literalCache map[pc]literal

// at returns the cached literal starting at loc, parsing and caching it on
// first access.
func (c literalCache) at(prog Program, loc pc) literal {
	if lit, ok := c[loc]; ok {
		return lit
	}
	lit := parseNumber(loc, prog.byteAt)
	c[loc] = lit
	return lit
}
