package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlRuleset = `seed_count: 4
layers:
  - label: Round 1
    matches:
      - label: Match 1
        category: elimination
        elimination: true
        home: {kind: seed, rank: 1}
        away: {kind: seed, rank: 2}
  - label: Final
    matches:
      - label: Final
        category: final
        elimination: true
        home: {kind: result, layer_ref: 1, match_ref: 0, outcome: winner}
        away: {kind: seed, rank: 3}
`

func TestLoadDispatchesByExtension(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		r, err := Load(writeTemp(t, "bracket.yaml", yamlRuleset))
		require.NoError(t, err)
		assert.Equal(t, 4, r.SeedCount)
		assert.Len(t, r.Layers, 2)
	})

	t.Run("yml", func(t *testing.T) {
		_, err := Load(writeTemp(t, "bracket.yml", yamlRuleset))
		require.NoError(t, err)
	})

	t.Run("json", func(t *testing.T) {
		r, err := Load(writeTemp(t, "bracket.json",
			`{"seed_count": 2, "layers": [{"label": "Final", "matches": []}]}`))
		require.NoError(t, err)
		assert.Equal(t, 2, r.SeedCount)
	})

	t.Run("cue", func(t *testing.T) {
		r, err := Load(writeTemp(t, "bracket.cue", `bracket: { seed_count: 8 }`))
		require.NoError(t, err)
		assert.Equal(t, 8, r.SeedCount)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeTemp(t, "bracket.toml", "seed_count = 4"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported ruleset format")
	})
}

func TestLoadYAMLStrictFields(t *testing.T) {
	// Unknown keys are rejected rather than silently dropped.
	_, err := LoadYAML(writeTemp(t, "typo.yaml", "seed_count: 4\nlayerz: []\n"))
	assert.Error(t, err)
}

func TestLoadYAMLRoundTripsSlotSources(t *testing.T) {
	r, err := LoadYAML(writeTemp(t, "bracket.yaml", yamlRuleset))
	require.NoError(t, err)

	assert.Equal(t, Seed(1), r.Layers[0].Matches[0].Home)
	assert.Equal(t, Result(1, 0, OutcomeWinner), r.Layers[1].Matches[0].Home)
}

func TestLoadCUEMissingBracketDecl(t *testing.T) {
	_, err := LoadCUE(writeTemp(t, "other.cue", `tournament: { seed_count: 4 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bracket")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	r, err := LoadYAML(writeTemp(t, "bracket.yaml", yamlRuleset))
	require.NoError(t, err)

	data, err := EncodeJSON(*r)
	require.NoError(t, err)

	back, err := LoadJSON(writeTemp(t, "bracket.json", string(data)))
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestEncodeJSONOmitsEmptySlotFields(t *testing.T) {
	r := Ruleset{SeedCount: 2, Layers: []Layer{{Label: "Final", Matches: []Match{{
		Label: "Final", Category: "final", Elimination: true,
	}}}}}

	data, err := EncodeJSON(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"home": {}`)
	assert.NotContains(t, string(data), `"rank"`)
}
