package format

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthrough(t *testing.T) {
	out, err := Passthrough{}.Format("const x = 1;")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", out)
}

func TestNewPrettierDefaults(t *testing.T) {
	p := NewPrettier("prettier", nil)
	assert.Equal(t, []string{"--parser", "babel"}, p.Args)
	assert.Equal(t, 30*time.Second, p.Timeout)

	p = NewPrettier("prettier", []string{"--parser", "typescript"})
	assert.Equal(t, []string{"--parser", "typescript"}, p.Args)
}

func TestPrettierPipesStdio(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on cat")
	}
	p := NewPrettier("cat", []string{})
	p.Args = nil
	out, err := p.Format("function x() {}\n")
	require.NoError(t, err)
	assert.Equal(t, "function x() {}\n", out)
}

func TestPrettierCommandMissing(t *testing.T) {
	p := NewPrettier("definitely-not-a-real-binary-xyz", nil)
	_, err := p.Format("x")
	assert.Error(t, err)
}

func TestApplyFallsBackOnError(t *testing.T) {
	p := NewPrettier("definitely-not-a-real-binary-xyz", nil)
	out := Apply(p, "const x = 1;", nil)
	assert.Equal(t, "const x = 1;", out, "raw source survives a formatter failure")
}

func TestApplyNilFormatter(t *testing.T) {
	assert.Equal(t, "src", Apply(nil, "src", nil))
}
