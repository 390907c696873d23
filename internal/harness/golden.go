package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/hashlookup/internal/result"
)

// Snapshot renders every step's rows the way the console shows them,
// each preceded by a header naming the lookup.
func Snapshot(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	for _, sr := range res.Steps {
		fmt.Fprintf(&buf, "## %s [%s %s %q]\n", sr.Name, sr.Mode, sr.Table, sr.Query)
		if sr.Err != nil {
			fmt.Fprintf(&buf, "error: %s\n", sr.ErrorKind)
			continue
		}
		if err := result.WriteText(&buf, sr.Rows); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	res, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, res); err != nil {
		return nil, err
	}
	return res, nil
}

// AssertGolden compares an existing result's snapshot against a golden file.
func AssertGolden(t *testing.T, name string, res *Result) error {
	t.Helper()

	data, err := Snapshot(res)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
