package metrics

import (
	"sync/atomic"

	"github.com/ppiankov/intentia/internal/model"
)

// Metrics tracks resolution outcomes.
type Metrics struct {
	Utterances   uint64 `json:"utterances"`
	Commands     uint64 `json:"commands"`
	Questions    uint64 `json:"questions"`
	Unrecognized uint64 `json:"unrecognized"`
	Unsupported  uint64 `json:"unsupported"`
	Unknown      uint64 `json:"unknown"`
}

var global = &Metrics{}

// UtteranceReceived increments the count of consumed utterances.
func UtteranceReceived() { atomic.AddUint64(&global.Utterances, 1) }

// Record counts one outcome by its intent type or failure reason.
func Record(o model.Outcome) {
	switch {
	case o.Failure != nil:
		switch *o.Failure {
		case model.FailureUnrecognizedInstruction:
			atomic.AddUint64(&global.Unrecognized, 1)
		case model.FailureUnsupportedInstruction:
			atomic.AddUint64(&global.Unsupported, 1)
		default:
			atomic.AddUint64(&global.Unknown, 1)
		}
	case o.Intent != nil && o.Intent.IsQuestion():
		atomic.AddUint64(&global.Questions, 1)
	case o.Intent != nil:
		atomic.AddUint64(&global.Commands, 1)
	}
}

// Get returns a snapshot of the current metrics.
func Get() Metrics {
	return Metrics{
		Utterances:   atomic.LoadUint64(&global.Utterances),
		Commands:     atomic.LoadUint64(&global.Commands),
		Questions:    atomic.LoadUint64(&global.Questions),
		Unrecognized: atomic.LoadUint64(&global.Unrecognized),
		Unsupported:  atomic.LoadUint64(&global.Unsupported),
		Unknown:      atomic.LoadUint64(&global.Unknown),
	}
}

// Failed returns the total number of failed outcomes.
func (m Metrics) Failed() uint64 { return m.Unrecognized + m.Unsupported + m.Unknown }

// Reset resets all metrics to zero.
func Reset() {
	atomic.StoreUint64(&global.Utterances, 0)
	atomic.StoreUint64(&global.Commands, 0)
	atomic.StoreUint64(&global.Questions, 0)
	atomic.StoreUint64(&global.Unrecognized, 0)
	atomic.StoreUint64(&global.Unsupported, 0)
	atomic.StoreUint64(&global.Unknown, 0)
}
