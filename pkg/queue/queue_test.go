package queue

import (
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type explodingJob struct{}

func (explodingJob) Handle() error { panic("boom") }

var flakyCalls atomic.Int32

// flakyJob panics on its first attempt and succeeds on the retry.
type flakyJob struct{}

func (flakyJob) Handle() error {
	if flakyCalls.Add(1) == 1 {
		panic("first attempt")
	}
	return nil
}

func TestRunTurnsPanicIntoError(t *testing.T) {
	err := run(explodingJob{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job panic")
}

func TestHandleSurvivesPanickingJob(t *testing.T) {
	flakyCalls.Store(0)
	Register("queue.flakyJob", func() Job { return &flakyJob{} })

	raw, err := json.Marshal(envelope{
		Type:    "queue.flakyJob",
		Payload: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	// A panic inside the job must stay inside handle; reaching the
	// assertions below is the point.
	handle(raw)

	assert.Equal(t, int32(2), flakyCalls.Load())
}
