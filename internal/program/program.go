// Package program assembles a VM's byte image from one or more text lines.
package program

import (
	"bufio"
	"io"
)

// Read joins every line from r with a single space, per the rule that a line
// boundary must become a literal space rather than vanish -- otherwise the
// numeric state machine would silently merge a literal split across two
// lines into one (see the host VM's prescanner).
func Read(r io.Reader) ([]byte, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out []byte
	first := true
	for sc.Scan() {
		if !first {
			out = append(out, ' ')
		}
		first = false
		out = append(out, sc.Bytes()...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
