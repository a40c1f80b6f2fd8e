package worker

import (
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()

	// All sends complete before anything is received.
	for i := 0; i < 1000; i++ {
		q.In() <- i
	}
	q.Close()

	want := 0
	for got := range q.Out() {
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
		want++
	}
	if want != 1000 {
		t.Errorf("expected 1000 items, got %d", want)
	}
}

func TestQueue_CloseEmpty(t *testing.T) {
	q := NewQueue[string]()
	q.Close()

	select {
	case _, ok := <-q.Out():
		if ok {
			t.Error("expected closed output")
		}
	case <-time.After(time.Second):
		t.Fatal("output not closed")
	}
}

func TestQueue_Interleaved(t *testing.T) {
	q := NewQueue[string]()

	q.In() <- "turn on the light"
	if got := <-q.Out(); got != "turn on the light" {
		t.Errorf("unexpected item %q", got)
	}

	q.In() <- "a"
	q.In() <- "b"
	q.Close()

	var got []string
	for s := range q.Out() {
		got = append(got, s)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected drain %v", got)
	}
}
