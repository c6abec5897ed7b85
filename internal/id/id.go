// Package id generates the prefixed ULIDs that tag requests and
// verification runs.
//
// ULIDs sort by creation time, so request logs and reports order naturally.
// Each kind carries a short prefix (req_*, run_*) to keep logs readable.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// RunID identifies a reference verification run
type RunID string

const (
	RequestPrefix = "req"
	RunPrefix     = "run"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with cryptographically secure entropy
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewRunID generates a new verification run ID
func NewRunID() RunID {
	return RunID(Default().GenerateWithPrefix(RunPrefix))
}

func (id RequestID) String() string { return string(id) }
func (id RunID) String() string     { return string(id) }

// IsValid reports whether id is a ULID, with or without a prefix
func IsValid(id string) bool {
	_, err := ulid.Parse(stripPrefix(id))
	return err == nil
}

// Timestamp extracts the creation time from an ID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(stripPrefix(id))
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}

func stripPrefix(id string) string {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		return id[i+1:]
	}
	return id
}
