package bibstring

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteString(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out)
	require.NoError(t, w.WriteString("IJGIS", "Int. J. of Geogr. Inf. Sci."))
	require.NoError(t, w.WriteString(" jofs ", `The "Quoted" Journal`))
	require.NoError(t, w.Flush())
	assert.Equal(t, 2, w.Entries())
	assert.Equal(t,
		"@STRING{IJGIS = \"Int. J. of Geogr. Inf. Sci.\"}\n"+
			"@STRING{jofs = \"The {\"}Quoted{\"} Journal\"}\n",
		out.String())
}

func TestWriteStringRejectsInvalidKeys(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out)
	for _, key := range []string{"", "1st", "two words", "a,b", "x=y", "{k}"} {
		err := w.WriteString(key, "value")
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
	}
	require.NoError(t, w.Flush())
	assert.Empty(t, out.String())
	assert.Zero(t, w.Entries())
}

func TestValidKey(t *testing.T) {
	for _, key := range []string{"jgr", "J-Geophys-Res", "phys_rev_b", "a1"} {
		assert.True(t, ValidKey(key), key)
	}
}

func TestEscapeKeepsBraces(t *testing.T) {
	assert.Equal(t, `{DNA} and {"}RNA{"}`, Escape(`{DNA} and "RNA"`))
}
