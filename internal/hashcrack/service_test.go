package hashcrack

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/crypt-crack/config"
	"github.com/ykhdr/crypt-crack/internal/pool"
)

type panickingReporter struct{}

func (panickingReporter) Report(context.Context, Match) error {
	panic("reporter exploded")
}

func testConfig(workers int) *config.CrackerConfig {
	cfg := config.DefaultConfig()
	cfg.Workers = workers
	return cfg
}

func TestService_Run(t *testing.T) {
	t.Run("processes every word exactly once", func(t *testing.T) {
		// Prepare
		words := make([]string, 200)
		for i := range words {
			words[i] = fmt.Sprintf("w%03d", i)
		}
		h := &fakeHasher{}
		rep := &recordingReporter{}
		hashes := NewHashSet(fakeRecord("3w042"), fakeRecord("9w199"))
		e := NewEngine(h, digitInsertion(), hashes, rep, WithRunID("run-1"))
		s := NewService(testConfig(8), e)

		// Execute
		summary, err := s.Run(context.Background(), words)

		// Check
		require.NoError(t, err)
		assert.Equal(t, "run-1", summary.RunID)
		assert.Equal(t, 200, summary.Words)
		assert.EqualValues(t, 200*50, summary.Candidates)
		assert.EqualValues(t, 200*50*2, summary.Comparisons)
		assert.EqualValues(t, 200*50*2, h.calls)
		assert.EqualValues(t, 2, summary.Matches)
		assert.Zero(t, summary.Faults)
		assert.ElementsMatch(t, []string{"3w042", "9w199"}, rep.candidates())

		progress := s.Progress()
		assert.Equal(t, "done", progress.State)
		assert.EqualValues(t, 200, progress.Submitted)
		assert.EqualValues(t, 200, progress.Processed)
		assert.Zero(t, progress.Running)
		require.NotNil(t, progress.StartedAt)
	})

	t.Run("counts failing words and keeps going", func(t *testing.T) {
		// Prepare
		h := &fakeHasher{short: true}
		e := NewEngine(h, digitInsertion(), NewHashSet(fakeRecord("x")), &recordingReporter{})
		s := NewService(testConfig(2), e)

		// Execute
		summary, err := s.Run(context.Background(), []string{"a", "b", "c"})

		// Check
		require.NoError(t, err)
		assert.EqualValues(t, 3, summary.Faults)
		assert.EqualValues(t, 3, s.Progress().Processed)
	})

	t.Run("isolates panicking tasks", func(t *testing.T) {
		// Prepare
		e := NewEngine(&fakeHasher{}, digitInsertion(), NewHashSet(fakeRecord("0a"), fakeRecord("0b")), panickingReporter{})
		s := NewService(testConfig(2), e)

		// Execute
		summary, err := s.Run(context.Background(), []string{"a", "b", "c"})

		// Check
		require.NoError(t, err)
		assert.EqualValues(t, 2, summary.Faults)
		assert.EqualValues(t, 3, s.Progress().Processed)
		assert.Zero(t, s.Progress().Running)
	})

	t.Run("stops submitting on a cancelled context", func(t *testing.T) {
		// Prepare
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h := &fakeHasher{}
		e := NewEngine(h, digitInsertion(), NewHashSet(fakeRecord("x")), &recordingReporter{})
		s := NewService(testConfig(2), e)

		// Execute
		summary, err := s.Run(ctx, []string{"a", "b"})

		// Check
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, summary)
		assert.Zero(t, summary.Candidates)
		assert.Zero(t, s.Progress().Submitted)
	})

	t.Run("refuses a second run", func(t *testing.T) {
		// Prepare
		e := NewEngine(&fakeHasher{}, digitInsertion(), NewHashSet(), &recordingReporter{})
		s := NewService(testConfig(1), e)
		_, err := s.Run(context.Background(), []string{"a"})
		require.NoError(t, err)

		// Execute
		_, err = s.Run(context.Background(), []string{"a"})

		// Check
		assert.Error(t, err)
	})

	t.Run("fails on an invalid worker count", func(t *testing.T) {
		// Prepare
		e := NewEngine(&fakeHasher{}, digitInsertion(), NewHashSet(), &recordingReporter{})
		s := NewService(testConfig(0), e)

		// Execute
		_, err := s.Run(context.Background(), []string{"a"})

		// Check
		assert.ErrorIs(t, err, pool.ErrInvalidWorkerCount)
	})
}

func TestService_Progress(t *testing.T) {
	t.Run("omits the start time before a run", func(t *testing.T) {
		// Prepare
		e := NewEngine(&fakeHasher{}, digitInsertion(), NewHashSet(), &recordingReporter{}, WithRunID("run-1"))
		s := NewService(testConfig(1), e)

		// Execute
		progress := s.Progress()
		raw, err := json.Marshal(progress)

		// Check
		require.NoError(t, err)
		assert.Equal(t, "idle", progress.State)
		assert.Nil(t, progress.StartedAt)
		assert.NotContains(t, string(raw), "started_at")
	})

	t.Run("reports the start time after a run", func(t *testing.T) {
		// Prepare
		e := NewEngine(&fakeHasher{}, digitInsertion(), NewHashSet(), &recordingReporter{})
		s := NewService(testConfig(1), e)
		before := time.Now()
		_, err := s.Run(context.Background(), []string{"a"})
		require.NoError(t, err)

		// Execute
		raw, err := json.Marshal(s.Progress())

		// Check
		require.NoError(t, err)
		assert.Contains(t, string(raw), "started_at")
		assert.False(t, s.Progress().StartedAt.Before(before.Add(-time.Second)))
	})
}
