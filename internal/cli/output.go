package cli

import (
	"encoding/json"
	"io"

	"github.com/ppiankov/intentia/internal/model"
)

// outcomeWriter emits one JSON object per line
type outcomeWriter struct {
	enc *json.Encoder
}

func newOutcomeWriter(w io.Writer) *outcomeWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &outcomeWriter{enc: enc}
}

func (w *outcomeWriter) Write(o model.Outcome) error {
	return w.enc.Encode(o)
}
