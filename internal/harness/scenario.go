package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bracketlab/core/internal/editor"
)

// Step action names. Most map one-to-one onto editor action kinds; "wire"
// drives the wiring state machine instead of dispatching directly, and
// "remove_edge" addresses the edge by its destination slot since edge ids
// are content hashes no one wants to write in YAML.
const (
	StepSetSeedCount = editor.KindSetQualifyingSeedCount
	StepAddLayer     = editor.KindAddLayer
	StepRemoveLayer  = editor.KindRemoveLayer
	StepAddNode      = editor.KindAddNode
	StepRemoveNode   = editor.KindRemoveNode
	StepUpdateNode   = editor.KindUpdateNode
	StepSetSeed      = editor.KindSetSeedSource
	StepRemoveEdge   = editor.KindRemoveEdge
	StepWire         = "wire"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Ruleset is an optional path to a ruleset file to start from.
	// When empty the scenario starts on the starter graph.
	Ruleset string `yaml:"ruleset,omitempty"`

	// Steps is the edit script, applied in order.
	Steps []Step `yaml:"steps"`

	// Expect asserts on the diagnostic report after the last step.
	Expect Expect `yaml:"expect"`
}

// Step is one scripted edit or wiring gesture. Which fields matter depends
// on Action; unused fields are ignored.
type Step struct {
	Action string `yaml:"action"`

	Count      int    `yaml:"count,omitempty"`       // set_qualifying_seed_count
	Index      int    `yaml:"index,omitempty"`       // remove_layer
	LayerIndex int    `yaml:"layer_index,omitempty"` // add_node
	Node       string `yaml:"node,omitempty"`        // node-addressed actions
	Port       string `yaml:"port,omitempty"`        // set_seed_source, remove_edge

	Rank        *int    `yaml:"rank,omitempty"`        // set_seed_source; omitted clears
	Label       *string `yaml:"label,omitempty"`       // update_node
	Category    *string `yaml:"category,omitempty"`    // update_node
	Elimination *bool   `yaml:"elimination,omitempty"` // update_node

	FromNode string `yaml:"from_node,omitempty"` // wire
	FromPort string `yaml:"from_port,omitempty"` // wire
	ToNode   string `yaml:"to_node,omitempty"`   // wire, remove_edge
	ToPort   string `yaml:"to_port,omitempty"`   // wire, remove_edge
}

// Expect asserts on the final diagnostic report.
type Expect struct {
	// Errors and Warnings are the expected diagnostic counts per severity.
	Errors   int `yaml:"errors"`
	Warnings int `yaml:"warnings"`

	// Codes, when present, is the exact ordered list of diagnostic codes.
	Codes []string `yaml:"codes,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file with strict field
// validation, so typos fail loudly instead of silently skipping a step.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	switch step.Action {
	case StepSetSeedCount:
		if step.Count < 1 {
			return fmt.Errorf("steps[%d]: count must be positive", index)
		}
	case StepAddLayer, StepRemoveLayer, StepAddNode:
		// index/layer_index default to 0, which is legal
	case StepRemoveNode, StepUpdateNode:
		if step.Node == "" {
			return fmt.Errorf("steps[%d]: node is required for %s", index, step.Action)
		}
	case StepSetSeed:
		if step.Node == "" || step.Port == "" {
			return fmt.Errorf("steps[%d]: node and port are required for %s", index, step.Action)
		}
	case StepWire:
		if step.FromNode == "" || step.FromPort == "" || step.ToNode == "" || step.ToPort == "" {
			return fmt.Errorf("steps[%d]: from_node, from_port, to_node, to_port are required for wire", index)
		}
	case StepRemoveEdge:
		if step.ToNode == "" || step.ToPort == "" {
			return fmt.Errorf("steps[%d]: to_node and to_port are required for remove_edge", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, step.Action)
	}
	return nil
}
