package mocks

import (
	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/random"
)

// MockRandom replays a queue of Intn results, returning 0 once the queue is
// exhausted. With an empty queue every draw is 0, which makes letter pools
// fully deterministic in tests.
type MockRandom struct {
	queue []int
	next  int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	if r.next >= len(r.queue) {
		return 0
	}
	v := r.queue[r.next]
	r.next++
	return v
}

// QueueIntn appends values to the replay queue.
func (r *MockRandom) QueueIntn(values ...int) {
	r.queue = append(r.queue, values...)
}

// Reset discards any queued values.
func (r *MockRandom) Reset() {
	r.queue = nil
	r.next = 0
}
