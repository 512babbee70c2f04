package shortwords

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/isoabbrev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneRule struct{ done bool }

func (r *oneRule) Next() (isoabbrev.RawRule, error) {
	if r.done {
		return isoabbrev.RawRule{}, io.EOF
	}
	r.done = true
	return isoabbrev.RawRule{Pattern: "journal", Languages: "mul", Abbreviation: "j."}, nil
}

func TestReaderSkipsCommentsAndPhrases(t *testing.T) {
	r := NewReader(strings.NewReader("\ufeffof\n# comment\n\n  the  \nand so on\nde\n"))
	var words []string
	for {
		w, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		words = append(words, w)
	}
	assert.Equal(t, []string{"of", "the", "de"}, words)
	assert.Equal(t, 1, r.Skipped())
}

func TestDefaultList(t *testing.T) {
	index, err := isoabbrev.LoadRules("test", &oneRule{})
	require.NoError(t, err)
	require.NoError(t, LoadWords(index, strings.NewReader(Default)))
	for _, w := range []string{"of", "the", "and", "de", "la", "und", "für"} {
		assert.True(t, index.IsExempt(isoabbrev.Normalize(w)), "%q should be exempt", w)
	}
	assert.False(t, index.IsExempt("journal"))
	assert.Zero(t, index.Stats().Skipped)
}
