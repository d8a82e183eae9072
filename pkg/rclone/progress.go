package rclone

import (
	"bytes"
	"encoding/json"
	"io"
)

// jsonLogLine is the subset of rclone's --use-json-log line shape this
// broker cares about. rclone's structured log lines carry a "stats" object
// only on the periodic stats lines produced by --stats-one-line; plain
// informational lines are passed through to the fallback writer unparsed.
type jsonLogLine struct {
	Stats *struct {
		Bytes      int64 `json:"bytes"`
		TotalBytes int64 `json:"totalBytes"`
	} `json:"stats"`
}

// progressWriter is an io.Writer that splits rclone's --use-json-log
// stderr stream into lines, forwarding parsed progress updates to
// onProgress and every other line to fallback (the subprocess logger).
type progressWriter struct {
	onProgress ProgressFunc
	fallback   io.Writer
	buffer     []byte
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.buffer = append(w.buffer, p...)

	for {
		index := bytes.IndexByte(w.buffer, '\n')
		if index < 0 {
			break
		}
		line := w.buffer[:index]
		w.buffer = w.buffer[index+1:]
		w.handleLine(line)
	}

	return len(p), nil
}

func (w *progressWriter) handleLine(line []byte) {
	var decoded jsonLogLine
	if err := json.Unmarshal(line, &decoded); err == nil && decoded.Stats != nil {
		w.onProgress(decoded.Stats.Bytes, decoded.Stats.TotalBytes)
		return
	}
	_, _ = w.fallback.Write(append(append([]byte{}, line...), '\n'))
}
