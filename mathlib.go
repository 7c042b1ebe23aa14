package main

import "math"

// escOp is one library-escape operation, keyed by the byte that follows
// '\' in the bytecode stream (spec.md §4.3). Every pack repo that wires
// elementary math (antibyte-retroterm's tinybasic, phroun-pawscript's
// lib_basicmath/lib_math) reaches straight for the standard math package;
// there is no third-party numerics library in the pack for elementary
// transcendental functions, so this table is the one stdlib-by-necessity
// component (see DESIGN.md).
type escOp func(s *Stack)

func unary(f func(float64) float64) escOp {
	return func(s *Stack) { s.setTop(f(s.top())) }
}

func binary(f func(x, y float64) float64) escOp {
	return func(s *Stack) {
		rhs := s.pop()
		s.setTop(f(s.top(), rhs))
	}
}

var escTable = map[byte]escOp{
	'^': binary(math.Pow),
	'h': binary(math.Hypot),
	'H': func(s *Stack) {
		x := s.pop()
		y := s.pop()
		s.setTop(hypot3(s.top(), y, x))
	},
	'a': binary(math.Atan2),

	's': unary(math.Sin),
	'S': unary(math.Asin),
	'c': unary(math.Cos),
	'C': unary(math.Acos),
	't': unary(math.Tan),
	'T': unary(math.Atan),
	'x': unary(math.Sinh),
	'X': unary(math.Asinh),
	'y': unary(math.Cosh),
	'Y': unary(math.Acosh),
	'z': unary(math.Tanh),
	'Z': unary(math.Atanh),

	'v': unary(math.Erf),
	'V': unary(math.Erfc),
	'u': unary(math.Gamma),
	'U': func(s *Stack) {
		lg, _ := math.Lgamma(s.top())
		s.setTop(lg)
	},

	'e': unary(math.Exp),
	'l': unary(math.Log),
	'2': unary(math.Log2),
	'q': unary(math.Sqrt),
	'3': unary(math.Cbrt),

	'>': unary(math.Ceil),
	'<': unary(math.Floor),
	'_': unary(math.Trunc),
	'|': unary(math.Abs),
	'i': unary(math.Round),
	'I': unary(math.RoundToEven),

	'f': func(s *Stack) {
		frac, exp := math.Frexp(s.top())
		s.setTop(frac)
		s.push(Value(exp))
	},
	'F': func(s *Stack) {
		exp := Int(s.pop())
		s.setTop(math.Ldexp(s.top(), int(exp)))
	},
	'm': func(s *Stack) {
		intPart, fracPart := splitModf(s.top())
		s.setTop(fracPart)
		s.push(intPart)
	},

	'-': func(s *Stack) {
		if math.Signbit(s.top()) {
			s.setTop(1)
		} else {
			s.setTop(0)
		}
	},
	'+': binary(math.Copysign),
}

// hypot3 is the 3-argument hypot the 'H' escape exposes: sqrt(x^2+y^2+z^2),
// computed via two 2-argument math.Hypot calls to stay overflow-safe the
// same way math.Hypot itself does.
func hypot3(x, y, z float64) float64 {
	return math.Hypot(math.Hypot(x, y), z)
}

// splitModf returns (integer part, fractional part), in math.Modf's order,
// so callers can push them in the opcode's documented order (fractional
// part first, then integer part).
func splitModf(x float64) (intPart, fracPart float64) {
	intPart, fracPart = math.Modf(x)
	return intPart, fracPart
}
