package testutil

import (
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// EightSeedRuleset returns a complete eight-seed bracket: four opening
// matches, two semifinals, and a final. Every slot is bound and every
// progression reference resolves, so the graph it imports to validates
// with zero diagnostics.
func EightSeedRuleset() ruleset.Ruleset {
	opening := ruleset.Layer{Label: "Round 1"}
	for i := 0; i < 4; i++ {
		opening.Matches = append(opening.Matches, ruleset.Match{
			Label:       fmt.Sprintf("Match %d", i+1),
			Category:    "elimination",
			Elimination: true,
			Home:        ruleset.Seed(2*i + 1),
			Away:        ruleset.Seed(2*i + 2),
		})
	}

	semis := ruleset.Layer{Label: "Semifinals"}
	for i := 0; i < 2; i++ {
		semis.Matches = append(semis.Matches, ruleset.Match{
			Label:       fmt.Sprintf("Semifinal %d", i+1),
			Category:    "elimination",
			Elimination: true,
			Home:        ruleset.Result(1, 2*i, ruleset.OutcomeWinner),
			Away:        ruleset.Result(1, 2*i+1, ruleset.OutcomeWinner),
		})
	}

	final := ruleset.Layer{Label: "Final", Matches: []ruleset.Match{{
		Label:       "Final",
		Category:    "final",
		Elimination: true,
		Home:        ruleset.Result(2, 0, ruleset.OutcomeWinner),
		Away:        ruleset.Result(2, 1, ruleset.OutcomeWinner),
	}}}

	return ruleset.Ruleset{
		SeedCount: 8,
		Layers:    []ruleset.Layer{opening, semis, final},
	}
}

// EightSeedGraph imports EightSeedRuleset into graph form.
func EightSeedGraph() bracket.Graph {
	return ruleset.FromRuleset(EightSeedRuleset())
}
