package ruleset

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileRuleset parses a CUE value into a Ruleset.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the bracket struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`bracket: { seed_count: 8, ... }`)
//	r, err := CompileRuleset(v.LookupPath(cue.ParsePath("bracket")))
func CompileRuleset(v cue.Value) (*Ruleset, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	r := &Ruleset{}

	// seed_count (required)
	scVal := v.LookupPath(cue.ParsePath("seed_count"))
	if !scVal.Exists() {
		return nil, &CompileError{
			Field:   "seed_count",
			Message: "seed_count is required",
			Pos:     v.Pos(),
		}
	}
	sc, err := scVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	r.SeedCount = int(sc)

	// layers (optional, can be empty)
	layersVal := v.LookupPath(cue.ParsePath("layers"))
	if layersVal.Exists() {
		iter, err := layersVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			layer, err := compileLayer(iter.Value())
			if err != nil {
				return nil, err
			}
			r.Layers = append(r.Layers, layer)
		}
	}

	return r, nil
}

// compileLayer parses a single layer entry.
func compileLayer(v cue.Value) (Layer, error) {
	var layer Layer

	labelVal := v.LookupPath(cue.ParsePath("label"))
	if labelVal.Exists() {
		label, err := labelVal.String()
		if err != nil {
			return layer, formatCUEError(err)
		}
		layer.Label = label
	}

	matchesVal := v.LookupPath(cue.ParsePath("matches"))
	if !matchesVal.Exists() {
		return layer, nil
	}
	iter, err := matchesVal.List()
	if err != nil {
		return layer, formatCUEError(err)
	}
	for iter.Next() {
		match, err := compileMatch(iter.Value())
		if err != nil {
			return layer, err
		}
		layer.Matches = append(layer.Matches, match)
	}

	return layer, nil
}

// compileMatch parses a single match entry.
func compileMatch(v cue.Value) (Match, error) {
	var m Match

	labelVal := v.LookupPath(cue.ParsePath("label"))
	if labelVal.Exists() {
		label, err := labelVal.String()
		if err != nil {
			return m, formatCUEError(err)
		}
		m.Label = label
	}

	catVal := v.LookupPath(cue.ParsePath("category"))
	if catVal.Exists() {
		cat, err := catVal.String()
		if err != nil {
			return m, formatCUEError(err)
		}
		m.Category = cat
	}

	elimVal := v.LookupPath(cue.ParsePath("elimination"))
	if elimVal.Exists() {
		elim, err := elimVal.Bool()
		if err != nil {
			return m, formatCUEError(err)
		}
		m.Elimination = elim
	}

	var err error
	m.Home, err = compileSlot(v.LookupPath(cue.ParsePath("home")))
	if err != nil {
		return m, err
	}
	m.Away, err = compileSlot(v.LookupPath(cue.ParsePath("away")))
	if err != nil {
		return m, err
	}

	return m, nil
}

// compileSlot parses a slot source. Supports:
//   - {seed: 3}
//   - {result: {layer: 1, match: 0, outcome: "winner"}}
//   - absent value (unbound slot)
func compileSlot(v cue.Value) (SlotSource, error) {
	if !v.Exists() {
		return SlotSource{}, nil
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if seedVal.Exists() {
		rank, err := seedVal.Int64()
		if err != nil {
			return SlotSource{}, formatCUEError(err)
		}
		return Seed(int(rank)), nil
	}

	resVal := v.LookupPath(cue.ParsePath("result"))
	if resVal.Exists() {
		layerRef, err := resVal.LookupPath(cue.ParsePath("layer")).Int64()
		if err != nil {
			return SlotSource{}, formatCUEError(err)
		}
		matchRef, err := resVal.LookupPath(cue.ParsePath("match")).Int64()
		if err != nil {
			return SlotSource{}, formatCUEError(err)
		}
		outcome, err := resVal.LookupPath(cue.ParsePath("outcome")).String()
		if err != nil {
			return SlotSource{}, formatCUEError(err)
		}
		if outcome != OutcomeWinner && outcome != OutcomeLoser {
			return SlotSource{}, &CompileError{
				Field:   "outcome",
				Message: fmt.Sprintf("invalid outcome %q, must be %q or %q", outcome, OutcomeWinner, OutcomeLoser),
				Pos:     resVal.Pos(),
			}
		}
		return Result(int(layerRef), int(matchRef), outcome), nil
	}

	return SlotSource{}, nil
}

// CompileError represents a ruleset compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
