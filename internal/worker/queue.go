package worker

// Queue is an unbounded FIFO between one producer and one consumer.
// Sends on In never wait for the consumer; items are buffered in memory.
// Closing In delivers the remaining items and then closes Out.
type Queue[T any] struct {
	in  chan T
	out chan T
}

// NewQueue starts the queue's forwarding goroutine
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go q.forward()
	return q
}

// In returns the producer side
func (q *Queue[T]) In() chan<- T { return q.in }

// Out returns the consumer side
func (q *Queue[T]) Out() <-chan T { return q.out }

// Close closes the producer side
func (q *Queue[T]) Close() { close(q.in) }

func (q *Queue[T]) forward() {
	defer close(q.out)

	var pending []T
	in := q.in
	for in != nil || len(pending) > 0 {
		var (
			out  chan T
			next T
		)
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}

		select {
		case item, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, item)
		case out <- next:
			var zero T
			pending[0] = zero
			pending = pending[1:]
		}
	}
}
