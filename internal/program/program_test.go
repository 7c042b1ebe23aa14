package program

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJoinsLinesWithASpace(t *testing.T) {
	got, err := Read(strings.NewReader("1 2 3\n+ +\n"))
	require.NoError(t, err)
	assert.Equal(t, "1 2 3 + +", string(got))
}

func TestReadSingleLineNoTrailingSeparator(t *testing.T) {
	got, err := Read(strings.NewReader("42'P"))
	require.NoError(t, err)
	assert.Equal(t, "42'P", string(got))
}

func TestReadEmptyInput(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "", string(got))
}

func TestReadPreventsLiteralSpanningLines(t *testing.T) {
	// Without the joining space, "1" and "2" on separate lines would risk
	// being read back-to-back as if part of one literal.
	got, err := Read(strings.NewReader("1\n2"))
	require.NoError(t, err)
	assert.Equal(t, "1 2", string(got))
}
