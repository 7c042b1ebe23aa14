package main

import "math"

// numState is a state of the numeric literal parser (spec.md §4.1).
type numState int

const (
	numIdle numState = iota
	numInteger
	numFraction
	numExponent
)

// literal is a cached parse result: the value of a literal starting at some
// PC, and the PC of the first byte after it.
type literal struct {
	value Value
	next  pc
}

// parseNumber parses a digit/dot literal starting at loc, per the state
// machine in spec.md §4.1. It does not consult or populate any cache --
// callers that want memoized parses go through literalCache.at.
//
// The Fraction/Exponent transition on a second '.' and the asymmetric close
// of the Exponent phase (a third '.' applies a negative exponent, any other
// non-digit applies a positive one) are both deliberate, observable parts
// of the state machine; see the table in spec.md §4.1.
func parseNumber(at pc, byteAt func(pc) byte) literal {
	loc := at
	state := numIdle
	val := 0.0
	p := 0.0

	for {
		b := byteAt(loc)
		isDigit := b >= '0' && b <= '9'
		isDot := b == '.'
		if !isDigit && !isDot {
			break
		}
		loc++

		if isDigit {
			d := Value(b - '0')
			switch state {
			case numIdle:
				val = d
				state = numInteger
			case numInteger:
				val = val*10 + d
			case numFraction:
				val += d / p
				p *= 10
			case numExponent:
				p = p*10 + d
			}
			continue
		}

		// isDot
		switch state {
		case numIdle, numInteger:
			state = numFraction
			p = 10
		case numFraction:
			state = numExponent
			p = 0
		case numExponent:
			// Third '.': close the exponent phase with a NEGATIVE
			// exponent, then stop. This is the asymmetric half of the
			// close documented in spec.md §4.1.
			val *= math.Pow(10, -p)
			return literal{val, loc}
		}
	}

	// Termination on any other non-digit, non-dot byte (including
	// out-of-range reads, which byteAt reports as 'X'): if we were mid
	// Exponent, apply a POSITIVE exponent -- the other asymmetric half.
	if state == numExponent {
		val *= math.Pow(10, p)
	}
	return literal{val, loc}
}
