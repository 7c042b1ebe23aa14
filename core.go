package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mpb/strandvm/internal/flushio"
)

// Core holds everything a VM needs that isn't part of its program/stack/vars
// state: the output sink and the leveled logging facility used for tracing
// and diagnostics.
type Core struct {
	logging
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (core *Core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

// printValue writes a value's default textual rendering followed by a
// newline -- the output format for both `'` and `!` (spec §6).
func (core *Core) printValue(v Value) {
	core.writeLine(strconv.FormatFloat(v, 'g', -1, 64))
}

func (core *Core) writeLine(s string) {
	if core.out == nil {
		return
	}
	if _, err := io.WriteString(core.out, s); err != nil {
		core.halt(err)
		return
	}
	if _, err := io.WriteString(core.out, "\n"); err != nil {
		core.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
