package reporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileDiff(t *testing.T) {
	t.Parallel()

	diff, err := NewFileDiff("a.css", "a{color:red}\n", "a {\n  color: red;\n}\n")
	require.NoError(t, err)

	assert.True(t, diff.HasChanges())
	assert.Equal(t, 3, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	assert.Contains(t, diff.Text, "--- a/a.css\n")
	assert.Contains(t, diff.Text, "+++ b/a.css\n")
	assert.Contains(t, diff.Text, "-a{color:red}\n")
}

func TestNewFileDiffUnchanged(t *testing.T) {
	t.Parallel()

	diff, err := NewFileDiff("a.css", "a {\n}\n", "a {\n}\n")
	require.NoError(t, err)

	assert.False(t, diff.HasChanges())
	assert.Zero(t, diff.Additions)
	assert.Zero(t, diff.Deletions)
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()

	diff, err := NewFileDiff("x.scss", "$a:1;\n", "$a: 1;\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	writeDiff(&buf, NewStyles(false), diff)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/x.scss b/x.scss\n")
	assert.Contains(t, out, "-$a:1;\n")
	assert.Contains(t, out, "+$a: 1;\n")
	assert.Contains(t, out, "@@ -1 +1 @@\n")
}
