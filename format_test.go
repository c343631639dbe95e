package timecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FindDefinition_unknown_name(t *testing.T) {
	f, err := FindDefinition("does_not_exist")
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrFormatNotFound)
}

func Test_FindDefinition_builds_and_is_idempotent(t *testing.T) {
	defer FreeAllLookups()

	f, err := FindDefinition("serato_2a")
	require.NoError(t, err)
	require.True(t, f.Built())

	first := f.LUT()
	require.NotNil(t, first)

	// A second lookup must not rebuild: same table pointer back.
	f2, err := FindDefinition("serato_2a")
	require.NoError(t, err)
	assert.Same(t, first, f2.LUT())
}

func Test_FreeAllLookups_clears_every_entry(t *testing.T) {
	_, err := FindDefinition("serato_2a")
	require.NoError(t, err)
	assert.True(t, Catalog[0].Built())

	FreeAllLookups()

	for _, f := range Catalog {
		assert.False(t, f.Built(), "format %s should be unbuilt after FreeAllLookups", f.Name)
	}
}

func Test_catalog_covers_every_named_format(t *testing.T) {
	want := []string{
		"serato_2a", "serato_2b", "serato_cd",
		"traktor_a", "traktor_b",
		"traktor_mk2_a", "traktor_mk2_b", "traktor_mk2_cd",
		"mixvibes_v2", "mixvibes_7inch",
		"pioneer_a", "pioneer_b",
	}
	got := make(map[string]bool, len(Catalog))
	for _, f := range Catalog {
		got[f.Name] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "catalog missing %s", name)
	}
}

// Flags should only ever be combined, never silently overwritten - this
// pins the three single-flag formats plus the dual-flag MK2 formats.
func Test_catalog_flags(t *testing.T) {
	byName := func(name string) *Format {
		for _, f := range Catalog {
			if f.Name == name {
				return f
			}
		}
		t.Fatalf("missing %s", name)
		return nil
	}

	assert.True(t, byName("traktor_a").Flags.has(SwitchPhase))
	assert.True(t, byName("mixvibes_v2").Flags.has(SwitchPrimary))
	assert.True(t, byName("pioneer_a").Flags.has(SwitchPolarity))
	assert.True(t, byName("traktor_mk2_a").Flags.has(SwitchPhase))
	assert.True(t, byName("traktor_mk2_a").Flags.has(OffsetModulation))
	assert.False(t, byName("serato_2a").Flags.has(SwitchPhase))
}
