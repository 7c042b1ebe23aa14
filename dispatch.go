package main

import (
	"context"
	"fmt"
	"math"
)

// VM ties the immutable program and its prescan tables to the mutable
// runtime state -- stack, variable bank, program counter, and step count --
// plus the Core it inherits for output and logging.
type VM struct {
	Core

	program Program
	scan    *prescanResult

	stack Stack
	vars  Vars

	pc        pc
	steps     int64
	maxSteps  int64
	terminate bool
}

// run drives the dispatch loop to completion, honoring ctx cancellation and
// any configured step ceiling between steps (spec §5: cooperative only at
// step granularity; the host may abandon execution between steps). The
// output sink is flushed whenever run returns.
func (vm *VM) run(ctx context.Context) (err error) {
	defer func() {
		if vm.out != nil {
			if ferr := vm.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	vm.traceConstruction()
	for !vm.terminate {
		if err := ctx.Err(); err != nil {
			return err
		}
		if vm.maxSteps > 0 && vm.steps >= vm.maxSteps {
			return fmt.Errorf("exceeded max step count %d", vm.maxSteps)
		}
		vm.traceStep()
		vm.step()
	}
	vm.finish()
	return nil
}

// step performs exactly one dispatch-loop iteration (spec §4.3): fetch,
// normalize whitespace, optionally extend through a library escape, count,
// dispatch.
func (vm *VM) step() {
	b := vm.program.wsByteAt(vm.pc)
	vm.pc++

	if b == '\\' {
		esc := vm.fetchRaw()
		vm.steps++
		vm.escape(esc)
		return
	}

	vm.steps++
	vm.dispatch(b)
}

// fetchRaw reads the byte at pc without whitespace normalization and
// advances pc past it -- used for inline selector operands (M, V, !) and for
// the second byte of a library escape.
func (vm *VM) fetchRaw() byte {
	b := vm.program.byteAt(vm.pc)
	vm.pc++
	return b
}

func (vm *VM) dispatch(b byte) {
	switch {
	case isDigitOrDot(b):
		vm.pushLiteral()

	case b >= 'a' && b <= 'z':
		vm.stack.push(vm.vars.get(b))

	case b == '+':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() + rhs)
	case b == '-':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() - rhs)
	case b == '*':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() * rhs)
	case b == '/':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() / rhs)
	case b == '~':
		vm.stack.setTop(-vm.stack.top())
	case b == '%':
		rhs := vm.stack.pop()
		vm.stack.setTop(math.Mod(vm.stack.top(), rhs))
	case b == '<':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() * math.Pow(2, rhs))
	case b == '>':
		rhs := vm.stack.pop()
		vm.stack.setTop(vm.stack.top() / math.Pow(2, rhs))

	case b == '&':
		rhs := Uint(vm.stack.pop())
		vm.stack.setTop(Value(Uint(vm.stack.top()) & rhs))
	case b == '|':
		rhs := Uint(vm.stack.pop())
		vm.stack.setTop(Value(Uint(vm.stack.top()) | rhs))
	case b == '^':
		rhs := Uint(vm.stack.pop())
		vm.stack.setTop(Value(Uint(vm.stack.top()) ^ rhs))

	case b == 'I':
		vm.stack.setTop(Value(Int(vm.stack.top())))
	case b == 'U':
		vm.stack.setTop(Value(Uint(vm.stack.top())))

	case b == '\'':
		vm.printValue(vm.stack.top())
	case b == '!':
		sel := vm.fetchRaw()
		vm.printValue(vm.vars.get(sel))

	case b == 'M':
		sel := vm.fetchRaw()
		vm.vars.set(sel, vm.stack.pop())
	case b == 'V':
		sel := vm.fetchRaw()
		vm.stack.push(vm.vars.get(sel))

	case b == 'D':
		vm.stack.push(vm.stack.top())
	case b == 'P':
		vm.stack.pop()
	case b == 'Q':
		vm.stack.dropN(Nat(vm.stack.pop()))
	case b == 'R':
		vm.stack.rotate(Nat(vm.stack.pop()))
	case b == 'S':
		vm.stack.swap()

	case b == 'C':
		dst := vm.stack.pop()
		target := vm.scan.resolve(dst)
		vm.stack.push(encode(vm.pc))
		vm.pc = target
	case b == 'G':
		dst := vm.stack.pop()
		vm.pc = vm.scan.resolve(dst)

	case b == '?':
		if vm.stack.pop() < 0 {
			vm.pc = vm.scan.branchTargetAt(vm.pc)
		}
	case b == ':', b == ';', b == 'L', b == '@', b == 'B', b == 'F', b == ' ':
		vm.pc = vm.scan.branchTargetAt(vm.pc)

	case b == 'X':
		vm.terminate = true

	default:
		vm.undefinedOpcode(b)
	}
}

func (vm *VM) pushLiteral() {
	lit := vm.scan.literals.at(vm.program, vm.pc-1)
	vm.stack.push(lit.value)
	vm.pc = lit.next
}

func (vm *VM) escape(b byte) {
	op, ok := escTable[b]
	if !ok {
		vm.undefinedOpcode(b)
		return
	}
	op(&vm.stack)
}

// undefinedOpcode halts the run and reports the offending byte and PC as
// part of the observable output (spec §6: "Exit behavior"), not merely as a
// trace-only diagnostic.
func (vm *VM) undefinedOpcode(b byte) {
	vm.terminate = true
	vm.writeLine(fmt.Sprintf("undefined opcode %q at pc %d", b, vm.pc-1))
}

// finish emits the stable "DONE" marker, appending the step count only when
// trace logging is enabled (spec §6).
func (vm *VM) finish() {
	if vm.logfn != nil {
		vm.writeLine(fmt.Sprintf("DONE  %d steps", vm.steps))
		return
	}
	vm.writeLine("DONE")
}
