package main

import (
	"io"
	"io/ioutil"

	"github.com/mpb/strandvm/internal/flushio"
)

// VMOption configures a VM at construction time.
type VMOption interface{ apply(vm *VM) }

// VMOptions is a slice of VMOption that itself applies as a single option,
// in order.
type VMOptions []VMOption

func (opts VMOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

var defaultOptions = VMOptions{
	withOutput(ioutil.Discard),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

type programOption struct{ program Program }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type maxStepsOption int64

func withProgram(p Program) programOption { return programOption{p} }
func withOutput(w io.Writer) outputOption  { return outputOption{w} }
func withTee(w io.Writer) teeOption        { return teeOption{w} }
func withMaxSteps(n int64) maxStepsOption  { return maxStepsOption(n) }

func (o programOption) apply(vm *VM) { vm.program = o.program }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (n maxStepsOption) apply(vm *VM) { vm.maxSteps = int64(n) }
