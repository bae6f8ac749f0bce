package mongo

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPatternEscapesMetacharacters(t *testing.T) {
	p := searchPattern("a.b(c")
	assert.Equal(t, "i", p.Options)

	// The pattern must stay compilable and match only the literal term.
	re, err := regexp.Compile("(?i)" + p.Pattern)
	require.NoError(t, err)
	assert.True(t, re.MatchString("xxA.B(Cxx"))
	assert.False(t, re.MatchString("aXb(c"), "dot must not act as a wildcard")
}

func TestSearchPatternPlainTerm(t *testing.T) {
	p := searchPattern("lifter")
	assert.Equal(t, "lifter", p.Pattern)
}
