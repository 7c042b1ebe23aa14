package main

// traceStackDepth bounds how many top-of-stack entries a trace line reports
// -- a free-form diagnostic, not a stable interface (spec §9).
const traceStackDepth = 4

// traceConstruction logs every branch-chain remapping the prescanner folded
// away, once, before the first step (spec §6: "The branch-optimization
// debug output reports chain remappings at construction time").
func (vm *VM) traceConstruction() {
	if vm.logfn == nil {
		return
	}
	for _, c := range vm.scan.collapses {
		vm.logf("#", "collapse %d: %d -> %d", c.from, c.oldTo, c.newTo)
	}
}

// traceStep logs one per-step record -- PC, the byte about to be dispatched,
// and the top few stack entries -- before the step it describes runs.
func (vm *VM) traceStep() {
	if vm.logfn == nil {
		return
	}
	b := vm.program.wsByteAt(vm.pc)
	vm.logf(">", "pc=%d byte=%q steps=%d stack=%v", vm.pc, b, vm.steps, vm.topOfStack(traceStackDepth))
}

func (vm *VM) topOfStack(n int) []Value {
	depth := len(vm.stack)
	if n > depth {
		n = depth
	}
	out := make([]Value, n)
	copy(out, vm.stack[depth-n:])
	return out
}
