package ruleset

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileBracket(t *testing.T, src string) (*Ruleset, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileRuleset(v.LookupPath(cue.ParsePath("bracket")))
}

func TestCompileRulesetMinimal(t *testing.T) {
	r, err := compileBracket(t, `bracket: { seed_count: 4 }`)
	require.NoError(t, err)
	assert.Equal(t, 4, r.SeedCount)
	assert.Empty(t, r.Layers)
}

func TestCompileRulesetFull(t *testing.T) {
	src := `bracket: {
	seed_count: 4
	layers: [
		{
			label: "Round 1"
			matches: [
				{
					label:       "Match 1"
					category:    "elimination"
					elimination: true
					home: {seed: 1}
					away: {seed: 2}
				},
			]
		},
		{
			label: "Final"
			matches: [
				{
					label:       "Final"
					category:    "final"
					elimination: true
					home: {result: {layer: 1, match: 0, outcome: "winner"}}
					away: {seed: 3}
				},
			]
		},
	]
}`

	r, err := compileBracket(t, src)
	require.NoError(t, err)

	require.Len(t, r.Layers, 2)
	assert.Equal(t, "Round 1", r.Layers[0].Label)

	m := r.Layers[0].Matches[0]
	assert.Equal(t, "Match 1", m.Label)
	assert.True(t, m.Elimination)
	assert.Equal(t, Seed(1), m.Home)
	assert.Equal(t, Seed(2), m.Away)

	final := r.Layers[1].Matches[0]
	assert.Equal(t, Result(1, 0, OutcomeWinner), final.Home)
	assert.Equal(t, Seed(3), final.Away)
}

func TestCompileRulesetUnboundSlot(t *testing.T) {
	src := `bracket: {
	seed_count: 2
	layers: [{label: "Final", matches: [{label: "Final", category: "final"}]}]
}`

	r, err := compileBracket(t, src)
	require.NoError(t, err)
	assert.Equal(t, SlotSource{}, r.Layers[0].Matches[0].Home)
	assert.Equal(t, SlotSource{}, r.Layers[0].Matches[0].Away)
}

func TestCompileRulesetMissingSeedCount(t *testing.T) {
	_, err := compileBracket(t, `bracket: { layers: [] }`)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "seed_count", compileErr.Field)
}

func TestCompileRulesetInvalidOutcome(t *testing.T) {
	src := `bracket: {
	seed_count: 2
	layers: [{matches: [{home: {result: {layer: 1, match: 0, outcome: "draw"}}}]}]
}`

	_, err := compileBracket(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outcome")
}

func TestCompileRulesetTypeMismatch(t *testing.T) {
	_, err := compileBracket(t, `bracket: { seed_count: "eight" }`)
	assert.Error(t, err)
}

func TestCompileErrorFormatting(t *testing.T) {
	e := &CompileError{Field: "seed_count", Message: "seed_count is required"}
	assert.Equal(t, "seed_count: seed_count is required", e.Error())
}
