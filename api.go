package main

import (
	"context"
	"errors"
	"io"

	"github.com/mpb/strandvm/internal/panicerr"
)

// New builds a VM from the given options and runs the one-time prescan over
// whatever program was supplied via WithProgram. The returned VM's
// prescanned tables are immutable from this point on (spec §3 Lifecycle).
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts).apply(&vm)
	vm.scan = prescan(vm.program)
	return &vm
}

// Run executes the VM to completion or until ctx is done, recovering any
// internal panic (including the one halt() raises) into a plain error.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("strandvm", func() error {
		return vm.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var vmErr haltError
	if errors.As(err, &vmErr) {
		err = vmErr.error
	}
	return err
}

func WithProgram(p Program) VMOption { return withProgram(p) }
func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return withTee(w) }
func WithMaxSteps(n int64) VMOption   { return withMaxSteps(n) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
