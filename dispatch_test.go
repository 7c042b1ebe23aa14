package main

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram builds and runs a VM over src to completion (under a generous
// timeout, since these programs are all expected to halt on their own) and
// returns everything it printed.
func runProgram(t *testing.T, src string) string {
	t.Helper()
	var buf strings.Builder
	vm := New(WithProgram(Program(src)), WithOutput(&buf))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, vm.Run(ctx))

	return buf.String()
}

// outputValues splits a run's output into its printed numeric lines,
// excluding the trailing DONE marker, and parses each as a float64.
func outputValues(t *testing.T, output string) []float64 {
	t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.NotEmpty(t, lines)
	require.Equal(t, "DONE", lines[len(lines)-1], "run must end with the DONE marker")
	lines = lines[:len(lines)-1]

	values := make([]float64, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		require.NoErrorf(t, err, "line %q must parse as a number", line)
		values = append(values, v)
	}
	return values
}

func TestScenarioSimpleLoop(t *testing.T) {
	// S1: counter 9..0 prints 42 ten times.
	out := runProgram(t, "9 La 42'P 1- D? Ba ;")
	values := outputValues(t, out)

	require.Len(t, values, 10)
	for _, v := range values {
		assert.Equal(t, 42.0, v)
	}
}

func TestScenarioIfThenElse(t *testing.T) {
	// S2: prints 17 then 42, then terminates.
	out := runProgram(t, "1~ ? La 42'P : 17'P Ba ;")
	values := outputValues(t, out)

	assert.Equal(t, []float64{17, 42}, values)
}

func TestScenarioCallReturnPolynomial(t *testing.T) {
	// S3: a*x^2+b*x+c with (a,b,c,x)=(1,2,3,4) == 1*16+2*4+3 == 27.
	out := runProgram(t, "1 2 3 4 100C ' X @100 S DD* 5R*S 4R*+ 2R+S G")
	values := outputValues(t, out)

	assert.Equal(t, []float64{27}, values)
}

func TestScenarioCalleeLoop(t *testing.T) {
	// S4: caller loops 18 times over a callee at @100 that prints 42.
	out := runProgram(t, "17 La 100C 1- D ? Ba : X ; @100 42'P G")
	values := outputValues(t, out)

	require.Len(t, values, 18)
	for _, v := range values {
		assert.Equal(t, 42.0, v)
	}
}

func TestScenarioStackFloor(t *testing.T) {
	// S5: empty program terminates immediately with no printed values.
	out := runProgram(t, "")
	assert.Empty(t, outputValues(t, out))

	// A lone P terminates with an empty stack and no output.
	out = runProgram(t, "P")
	assert.Empty(t, outputValues(t, out))
}

func TestScenarioBitwiseAndCoercion(t *testing.T) {
	out := runProgram(t, "7 5 & '")
	assert.Equal(t, []float64{5}, outputValues(t, out))

	out = runProgram(t, "3.7 I '")
	assert.Equal(t, []float64{3}, outputValues(t, out))

	out = runProgram(t, "1 52 < '")
	assert.Equal(t, []float64{1 << 52}, outputValues(t, out))
}

func TestUndefinedOpcodeTerminates(t *testing.T) {
	out := runProgram(t, "#")
	assert.Contains(t, out, "undefined opcode")
	assert.True(t, strings.HasSuffix(out, "DONE\n"))
}

func TestTraceAppendsStepCount(t *testing.T) {
	var logged []string
	var out strings.Builder
	vm := New(
		WithProgram(Program("X")),
		WithOutput(&out),
		WithLogf(func(mess string, args ...interface{}) {
			logged = append(logged, mess)
		}),
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, vm.Run(ctx))
	assert.NotEmpty(t, logged, "trace logging must produce at least one record")
	assert.Equal(t, "DONE  1 steps\n", out.String(), "trace mode appends the step count to DONE")
}

func TestMaxStepsAborts(t *testing.T) {
	vm := New(
		WithProgram(Program("9 La 1- D? Ba ;")),
		WithOutput(new(strings.Builder)),
		WithMaxSteps(3),
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := vm.Run(ctx)
	assert.Error(t, err, "a program that would otherwise run long must be aborted by the step ceiling")
}
