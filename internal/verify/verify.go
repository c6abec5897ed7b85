package verify

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/GriffinCanCode/incgamma/internal/id"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// DefaultTolerance applies to cases that omit a tolerance
const DefaultTolerance = 1e-14

// ErrUnsupportedFormat is returned for table files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Case is one reference value
type Case struct {
	Function  string  `json:"function" yaml:"function" toml:"function"`
	A         float64 `json:"a" yaml:"a" toml:"a"`
	X         float64 `json:"x" yaml:"x" toml:"x"`
	Expected  float64 `json:"expected" yaml:"expected" toml:"expected"`
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty" toml:"tolerance,omitempty"`
}

// Table is a set of reference cases
type Table struct {
	Cases []Case `json:"cases" yaml:"cases" toml:"cases"`
}

// Failure records a case outside tolerance or one the engine rejected
type Failure struct {
	Case     Case    `json:"case"`
	Got      float64 `json:"got"`
	AbsError float64 `json:"abs_error"`
	Err      string  `json:"error,omitempty"`
}

// Report summarises a verification run
type Report struct {
	RunID       string    `json:"run_id"`
	Cases       int       `json:"cases"`
	Failures    []Failure `json:"failures"`
	MaxAbsError float64   `json:"max_abs_error"`
}

// Passed reports whether every case passed
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// LoadFile reads a table, choosing the decoder by extension
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a table in the format named by ext (".yaml", ".yml",
// ".toml" or ".json")
func Parse(data []byte, ext string) (*Table, error) {
	var table Table
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &table)
	case ".toml":
		err = toml.Unmarshal(data, &table)
	case ".json":
		err = sonic.Unmarshal(data, &table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s table: %w", strings.TrimPrefix(ext, "."), err)
	}

	for i, c := range table.Cases {
		if _, err := parseFunction(c.Function); err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
	}
	return &table, nil
}

// Run evaluates every case with ev
func Run(ev gamma.Evaluator, table *Table) *Report {
	report := &Report{
		RunID:    id.NewRunID().String(),
		Cases:    len(table.Cases),
		Failures: []Failure{},
	}

	for _, c := range table.Cases {
		tol := c.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}

		fn, _ := parseFunction(c.Function)
		var got float64
		var err error
		if fn == gamma.FunctionP {
			got, err = ev.P(c.A, c.X)
		} else {
			got, err = ev.Q(c.A, c.X)
		}
		if err != nil {
			report.Failures = append(report.Failures, Failure{Case: c, Err: err.Error()})
			continue
		}

		absErr := math.Abs(got - c.Expected)
		if absErr > report.MaxAbsError {
			report.MaxAbsError = absErr
		}
		if !scalar.EqualWithinAbsOrRel(got, c.Expected, tol, tol) {
			report.Failures = append(report.Failures, Failure{Case: c, Got: got, AbsError: absErr})
		}
	}

	return report
}

func parseFunction(name string) (gamma.Function, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "P":
		return gamma.FunctionP, nil
	case "Q":
		return gamma.FunctionQ, nil
	default:
		return 0, fmt.Errorf("unknown function %q (want P or Q)", name)
	}
}
