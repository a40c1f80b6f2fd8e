package metrics

import (
	"sync"
	"testing"

	"github.com/ppiankov/intentia/internal/model"
)

func TestUtteranceReceived(t *testing.T) {
	Reset()

	UtteranceReceived()
	m := Get()

	if m.Utterances != 1 {
		t.Errorf("expected Utterances=1, got %d", m.Utterances)
	}
}

func TestRecord(t *testing.T) {
	Reset()

	cmd := model.NewCommand("kitchen", model.Switch(model.SwitchOn), model.SubjectLight)
	Record(model.Succeeded("a", model.CommandIntent(cmd), 0.9))
	Record(model.Succeeded("b", model.QuestionIntent("b"), 0.95))
	Record(model.Failed("c", model.FailureUnrecognizedInstruction, 0.2))
	Record(model.Failed("d", model.FailureUnsupportedInstruction, 0.9))
	Record(model.Failed("e", model.FailureUnknown, 0))
	Record(model.Failed("f", model.FailureUnknown, 0))

	m := Get()
	if m.Commands != 1 || m.Questions != 1 {
		t.Errorf("expected 1 command and 1 question, got %+v", m)
	}
	if m.Unrecognized != 1 || m.Unsupported != 1 || m.Unknown != 2 {
		t.Errorf("unexpected failure counts %+v", m)
	}
	if m.Failed() != 4 {
		t.Errorf("expected Failed=4, got %d", m.Failed())
	}
}

func TestReset(t *testing.T) {
	UtteranceReceived()
	Record(model.Failed("x", model.FailureUnknown, 0))
	Reset()

	if m := Get(); m != (Metrics{}) {
		t.Errorf("expected zero metrics after reset, got %+v", m)
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UtteranceReceived()
			Record(model.Failed("x", model.FailureUnrecognizedInstruction, 0))
		}()
	}
	wg.Wait()

	m := Get()
	if m.Utterances != 100 || m.Unrecognized != 100 {
		t.Errorf("expected 100 of each, got %+v", m)
	}
}
