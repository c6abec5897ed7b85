package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()
	assert.NotEqual(t, gen.Generate(), gen.Generate())
}

func TestPrefixedIDs(t *testing.T) {
	req := NewRequestID()
	run := NewRunID()

	assert.True(t, strings.HasPrefix(req.String(), "req_"))
	assert.True(t, strings.HasPrefix(run.String(), "run_"))
	assert.Len(t, req.String(), len("req_")+26)

	assert.True(t, IsValid(req.String()))
	assert.True(t, IsValid(strings.TrimPrefix(run.String(), "run_")))
	assert.False(t, IsValid("req_not-a-ulid"))
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, err := Timestamp(NewRequestID().String())
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	_, err = Timestamp("garbage")
	assert.Error(t, err)
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 64)
	a := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()

	assert.Equal(t, a.Entropy(), b.Entropy())
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	var mu sync.Mutex
	seen := make(map[string]struct{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := gen.GenerateWithPrefix(RequestPrefix)
			mu.Lock()
			seen[s] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
