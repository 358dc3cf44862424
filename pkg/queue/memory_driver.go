package queue

import "context"

const memoryBuffer = 1000

// MemoryDriver holds envelopes in a buffered channel. It is the default
// backend and what the test suite runs against; nothing survives a restart.
type MemoryDriver struct {
	jobs chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.jobs <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-d.jobs:
		return payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
