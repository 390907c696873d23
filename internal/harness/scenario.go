package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/hashlookup/internal/lookup"
)

// Scenario defines a lookup test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tables are created and seeded before any lookup runs.
	Tables []TableDef `yaml:"tables"`

	// Lookups run in order against the seeded database.
	Lookups []LookupStep `yaml:"lookups"`
}

// TableDef describes a table to create and its rows.
type TableDef struct {
	Name    string      `yaml:"name"`
	Columns []ColumnDef `yaml:"columns"`

	// Rows map column names to seed values. Missing columns stay NULL.
	Rows []map[string]any `yaml:"rows,omitempty"`
}

// ColumnDef is one column of a seeded table.
type ColumnDef struct {
	Name string `yaml:"name"`

	// Type is the declared SQLite type; empty means no declared type.
	Type string `yaml:"type,omitempty"`
}

// LookupStep is one lookup with its expectations.
type LookupStep struct {
	Name  string `yaml:"name"`
	Mode  string `yaml:"mode"`
	Table string `yaml:"table"`
	Query string `yaml:"query"`

	// ListColumn overrides the list-of-digests column name.
	ListColumn *string `yaml:"list_column,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect specifies what a lookup should return.
// Only the fields that are set are checked.
type Expect struct {
	Count    *int                `yaml:"count,omitempty"`
	IDs      []string            `yaml:"ids,omitempty"`
	IDColumn string              `yaml:"id_column,omitempty"`
	Rows     []map[string]string `yaml:"rows,omitempty"`
	Error    string              `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Lookups) == 0 {
		return fmt.Errorf("at least one lookup is required")
	}

	for i, table := range s.Tables {
		if err := validateTable(i, table); err != nil {
			return err
		}
	}
	for i, step := range s.Lookups {
		if err := validateLookup(i, step); err != nil {
			return err
		}
	}
	return nil
}

func validateTable(index int, t TableDef) error {
	if t.Name == "" {
		return fmt.Errorf("tables[%d]: name is required", index)
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("tables[%d]: at least one column is required", index)
	}

	known := make(map[string]bool, len(t.Columns))
	for j, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("tables[%d].columns[%d]: name is required", index, j)
		}
		known[c.Name] = true
	}
	for j, row := range t.Rows {
		for name := range row {
			if !known[name] {
				return fmt.Errorf("tables[%d].rows[%d]: unknown column %q", index, j, name)
			}
		}
	}
	return nil
}

func validateLookup(index int, step LookupStep) error {
	if _, err := lookup.ParseMode(step.Mode); err != nil {
		return fmt.Errorf("lookups[%d]: %w", index, err)
	}
	if step.Table == "" {
		return fmt.Errorf("lookups[%d]: table is required", index)
	}
	if step.Expect.Count != nil && *step.Expect.Count < 0 {
		return fmt.Errorf("lookups[%d]: count must be non-negative", index)
	}
	if step.Expect.Error != "" && (step.Expect.Count != nil || step.Expect.IDs != nil || step.Expect.Rows != nil) {
		return fmt.Errorf("lookups[%d]: error cannot be combined with row expectations", index)
	}
	return nil
}
