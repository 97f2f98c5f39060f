package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/reconcile"
)

// Scenario is one YAML-described reconciliation case. Tree paths are
// relative to the scenario file.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Original    string  `yaml:"original"`
	Transformed string  `yaml:"transformed"`
	Expect      *Expect `yaml:"expect,omitempty"`

	dir string // directory of the scenario file
}

// Expect holds the scenario's optional expectations.
type Expect struct {
	Stats       *StatsExpect `yaml:"stats,omitempty"`
	MetaChanged *bool        `yaml:"meta_changed,omitempty"`
}

// StatsExpect mirrors reconcile.Stats with optional fields so a
// scenario can pin only the counters it cares about.
type StatsExpect struct {
	BlocksKept      *int `yaml:"blocks_kept,omitempty"`
	BlocksReplaced  *int `yaml:"blocks_replaced,omitempty"`
	BlocksRecursed  *int `yaml:"blocks_recursed,omitempty"`
	InlinesKept     *int `yaml:"inlines_kept,omitempty"`
	InlinesReplaced *int `yaml:"inlines_replaced,omitempty"`
	InlinesRecursed *int `yaml:"inlines_recursed,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Original == "" || s.Transformed == "" {
		return nil, fmt.Errorf("scenario %s: original and transformed are required", path)
	}

	s.dir = filepath.Dir(path)
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// filename.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// loadTree reads a tree file referenced by the scenario.
func (s *Scenario) loadTree(rel string) (*doctree.Document, error) {
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, rel)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree %s: %w", rel, err)
	}
	doc, err := doctree.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decoding tree %s: %w", rel, err)
	}
	return doc, nil
}

// check compares a run outcome against the expectations. Returns one
// message per mismatch.
func (e *Expect) check(stats reconcile.Stats, metaChanged bool) []string {
	if e == nil {
		return nil
	}
	var errs []string
	if e.MetaChanged != nil && *e.MetaChanged != metaChanged {
		errs = append(errs, fmt.Sprintf("meta_changed: want %v, got %v", *e.MetaChanged, metaChanged))
	}
	if e.Stats != nil {
		checkCounter := func(name string, want *int, got int) {
			if want != nil && *want != got {
				errs = append(errs, fmt.Sprintf("stats.%s: want %d, got %d", name, *want, got))
			}
		}
		checkCounter("blocks_kept", e.Stats.BlocksKept, stats.BlocksKept)
		checkCounter("blocks_replaced", e.Stats.BlocksReplaced, stats.BlocksReplaced)
		checkCounter("blocks_recursed", e.Stats.BlocksRecursed, stats.BlocksRecursed)
		checkCounter("inlines_kept", e.Stats.InlinesKept, stats.InlinesKept)
		checkCounter("inlines_replaced", e.Stats.InlinesReplaced, stats.InlinesReplaced)
		checkCounter("inlines_recursed", e.Stats.InlinesRecursed, stats.InlinesRecursed)
	}
	return errs
}
