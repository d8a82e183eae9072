package events

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONLinesSink writes one JSON object per line to an underlying writer
// (stdout, in cmd/browsey). It serializes writes so concurrent emitters
// never interleave partial lines.
type JSONLinesSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLinesSink creates a Sink writing newline-delimited JSON to w.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{w: w}
}

type wireEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Emit implements Sink.
func (s *JSONLinesSink) Emit(event string, payload interface{}) error {
	line, err := json.Marshal(wireEvent{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(line)
	return err
}
