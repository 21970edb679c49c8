// Package replay drives a filter widget from a YAML script of user
// interactions and records what it emits.
package replay

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/angelmondragon/ridefinderz-filters/pkg/querystate"
)

// Step operations.
const (
	OpToggle = "toggle"
	OpPrice  = "price"
	OpDrag   = "drag"
	OpCommit = "commit"
	OpReset  = "reset"
	OpSync   = "sync"
	OpOpen   = "open"
	OpClose  = "close"
)

// Script is a replayable interaction sequence.
type Script struct {
	Limits  *ScriptLimits `yaml:"limits,omitempty"`
	Initial string        `yaml:"initial,omitempty"`
	Steps   []Step        `yaml:"steps"`
}

// ScriptLimits overrides the default price limits.
type ScriptLimits struct {
	MaxPrice int64 `yaml:"max_price"`
	Gap      int64 `yaml:"gap"`
}

// Step is one interaction. Only the fields its op needs are read.
type Step struct {
	Op     string `yaml:"op"`
	Facet  string `yaml:"facet,omitempty"`
	Side   string `yaml:"side,omitempty"`
	Value  string `yaml:"value,omitempty"`
	Query  string `yaml:"query,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// Emission is a criteria object produced by a step.
type Emission struct {
	Step     int              `json:"step" yaml:"step"`
	Op       string           `json:"op" yaml:"op"`
	Criteria filters.Criteria `json:"criteria" yaml:"criteria"`
	Query    string           `json:"query" yaml:"query"`
}

// Result is the outcome of a replay.
type Result struct {
	Emissions []Emission   `json:"emissions" yaml:"emissions"`
	Final     filters.View `json:"final" yaml:"final"`
	Query     string       `json:"query" yaml:"query"`
}

// Load parses and validates a script.
func Load(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step before anything runs.
func (s *Script) Validate() error {
	if s.Limits != nil {
		if err := s.limits().Validate(); err != nil {
			return fmt.Errorf("limits: %w", err)
		}
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func (s *Script) limits() filters.Limits {
	if s.Limits == nil {
		return filters.DefaultLimits()
	}
	return filters.Limits{MaxPrice: s.Limits.MaxPrice, Gap: s.Limits.Gap}
}

func (st Step) validate() error {
	switch st.Op {
	case OpToggle:
		if _, err := enums.ParseFilterFacet(st.Facet); err != nil {
			return err
		}
	case OpPrice:
		if _, err := enums.ParsePriceSide(st.Side); err != nil {
			return err
		}
	case OpDrag:
		if _, err := enums.ParsePriceSide(st.Side); err != nil {
			return err
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(st.Value), 10, 64); err != nil {
			return fmt.Errorf("drag value %q is not an integer", st.Value)
		}
	case OpClose:
		if _, err := enums.ParsePanelCloseReason(st.Reason); err != nil {
			return err
		}
	case OpCommit, OpReset, OpSync, OpOpen:
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// Run replays the script against a fresh widget.
func Run(s *Script) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	l := s.limits()
	res := &Result{Emissions: []Emission{}}
	current := 0
	w := filters.NewWidget(l, func(c filters.Criteria) {
		res.Emissions = append(res.Emissions, Emission{
			Step:     current,
			Op:       s.Steps[current-1].Op,
			Criteria: c,
			Query:    querystate.Encode(c, l).Encode(),
		})
	}, nil)

	if s.Initial != "" {
		w.Sync(querystate.Parse(strings.TrimPrefix(s.Initial, "?"), l))
	}
	for i, step := range s.Steps {
		current = i + 1
		if err := apply(w, step, l); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", current, step.Op, err)
		}
	}
	res.Final = w.View()
	res.Query = querystate.Encode(w.Criteria(), l).Encode()
	w.Deactivate()
	return res, nil
}

func apply(w *filters.Widget, st Step, l filters.Limits) error {
	switch st.Op {
	case OpToggle:
		facet, _ := enums.ParseFilterFacet(st.Facet)
		return w.Toggle(facet, st.Value)
	case OpPrice:
		side, _ := enums.ParsePriceSide(st.Side)
		_, err := w.TypePrice(side, st.Value)
		return err
	case OpDrag:
		side, _ := enums.ParsePriceSide(st.Side)
		v, _ := strconv.ParseInt(strings.TrimSpace(st.Value), 10, 64)
		w.DragSlider(side, v)
	case OpCommit:
		w.CommitSlider()
	case OpReset:
		w.Reset()
	case OpSync:
		w.Sync(querystate.Parse(strings.TrimPrefix(st.Query, "?"), l))
	case OpOpen:
		w.OpenPanel()
	case OpClose:
		reason, _ := enums.ParsePanelCloseReason(st.Reason)
		w.ClosePanel(reason)
	}
	return nil
}
