package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ppiankov/intentia/internal/worker"
)

func drain(q *worker.Queue[string]) []string {
	q.Close()
	var got []string
	for u := range q.Out() {
		got = append(got, u)
	}
	return got
}

func TestFeedUtterances_LongLine(t *testing.T) {
	long := "turn on the " + strings.Repeat("very ", 20*1024) + "bright light"
	input := long + "\n\n   \nturn off the light\n"

	q := worker.NewQueue[string]()
	if err := feedUtterances(strings.NewReader(input), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := drain(q)
	if len(got) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(got))
	}
	if got[0] != long || got[1] != "turn off the light" {
		t.Errorf("utterances not delivered intact")
	}
}

func TestFeedUtterances_ReadError(t *testing.T) {
	errPeer := errors.New("stdin closed by peer")
	r := io.MultiReader(strings.NewReader("open the blinds\n"), iotest.ErrReader(errPeer))

	q := worker.NewQueue[string]()
	err := feedUtterances(r, q)
	if !errors.Is(err, errPeer) {
		t.Fatalf("expected read error, got %v", err)
	}

	if got := drain(q); len(got) != 1 || got[0] != "open the blinds" {
		t.Errorf("expected lines before the error to be queued, got %q", got)
	}
}
