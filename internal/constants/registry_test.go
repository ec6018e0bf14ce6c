package constants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsProvenance(t *testing.T) {
	reg := Defaults()
	assert.Equal(t, "kserc-fy2024-25", reg.Version())
	for _, name := range reg.Names() {
		c, ok := reg.Lookup(name)
		require.True(t, ok)
		assert.NotEmpty(t, c.Source, "constant %s has no provenance", name)
		assert.NotEmpty(t, c.Unit, "constant %s has no unit", name)
	}
}

func TestValidateCollectsAllMisses(t *testing.T) {
	reg := NewRegistry("test", map[string]Constant{
		"a.present": {Value: 1},
	})
	err := reg.Validate([]string{"a.present", "b.absent", "c.absent"})
	require.Error(t, err)

	var missing *ErrConstantMissing
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"b.absent", "c.absent"}, missing.Names)
}

func TestWithOverrides(t *testing.T) {
	base := Defaults()
	modified := base.With(map[string]float64{KeyROERate: 0.155})

	v, err := modified.Value(KeyROERate)
	require.NoError(t, err)
	assert.Equal(t, 0.155, v)
	assert.Equal(t, "kserc-fy2024-25+overrides", modified.Version())

	c, _ := modified.Lookup(KeyROERate)
	assert.Equal(t, "caller override", c.Source)

	// Receiver untouched.
	orig, err := base.Value(KeyROERate)
	require.NoError(t, err)
	assert.Equal(t, 0.14, orig)
}

func TestLoadFileRoundTrip(t *testing.T) {
	data, err := Defaults().MarshalYAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "constants.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Version(), loaded.Version())
	assert.Equal(t, Defaults().Names(), loaded.Names())
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: x\n"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "no constants")
}
