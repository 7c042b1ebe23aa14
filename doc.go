/* Package main: strandvm -- a stack machine whose program text runs itself

strandvm interprets a byte string as a stack-based bytecode program: source
and executable are the same bytes. A single byte is an opcode; a handful of
opcodes consume inline operands, either a single following byte (a variable
or local-label selector) or a run of digits and dots parsed by a small state
machine into one double. There is exactly one value type -- an IEEE 754
double -- so an integer is just a double that happens to have no fractional
part, and call/return addresses live in the same domain as user data,
distinguished from ordinary values by their sign.

Construction runs a two-pass prescan once over the whole program: a forward
pass resolves backward local branches and caches every literal it walks
past; a reverse pass resolves forward local branches and the conditional
`?`/`:`/`;` triad via a small stack of (after-then, after-else) frames. A
further pass collapses chains of branches that land on other branches, so
that the dispatch loop's `branch_target` lookups are always a single O(1)
hop. None of this can fail: a malformed program just prescans into branches
that land on the sentinel terminating PC, and execution ends the moment that
PC is fetched.

The dispatch loop itself is a flat switch over one normalized byte at a
time, optionally extended by one more byte behind a `\` escape prefix that
indexes a table of wrapped standard-library math functions. Everything else
-- arithmetic, the 256-slot variable bank, the stack's implicit floor of
zeros below its last real element, call/goto through the sign-encoded
destination union -- is described alongside its implementation.

Program assembly (reading lines and joining them with a literal space so a
literal can never silently span a line break) and trace formatting live
outside this core, in internal/program and in the command-line driver; see
main.go.
*/
package main
