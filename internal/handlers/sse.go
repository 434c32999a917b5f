package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// eventWriter writes server-sent events. Headers are sent with the first frame.
type eventWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func newEventWriter(w http.ResponseWriter) *eventWriter {
	return &eventWriter{w: w, rc: http.NewResponseController(w)}
}

func (e *eventWriter) start() {
	if e.started {
		return
	}
	e.started = true
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	e.w.WriteHeader(http.StatusOK)
}

// send writes one `data: <json>` frame and flushes it.
func (e *eventWriter) send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return e.write(string(payload))
}

// done writes the terminating `data: [DONE]` frame.
func (e *eventWriter) done() {
	_ = e.write("[DONE]")
}

func (e *eventWriter) write(data string) error {
	e.start()
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", data); err != nil {
		return err
	}
	// Writers without Flush support still get the frame, just buffered.
	if err := e.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
