package logging

import (
	"bytes"
	"io"
	"io/ioutil"

	"go.uber.org/zap"
)

// Logger is the main logger type used throughout the module. It wraps a
// zap.SugaredLogger, adding the dot-separated sublogger naming convention and
// a line-buffering io.Writer adapter for capturing subprocess output.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Sublogger creates a new logger scoped under the given name.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{sugar: l.sugar.Named(name)}
}

// Info logs at info level with fmt.Sprint semantics.
func (l *Logger) Info(v ...interface{}) {
	if l != nil {
		l.sugar.Info(v...)
	}
}

// Infof logs at info level with fmt.Sprintf semantics.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l != nil {
		l.sugar.Infof(format, v...)
	}
}

// Debug logs at debug level with fmt.Sprint semantics.
func (l *Logger) Debug(v ...interface{}) {
	if l != nil {
		l.sugar.Debug(v...)
	}
}

// Debugf logs at debug level with fmt.Sprintf semantics.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l != nil {
		l.sugar.Debugf(format, v...)
	}
}

// Warnf logs at warning level with fmt.Sprintf semantics.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l != nil {
		l.sugar.Warnf(format, v...)
	}
}

// Errorf logs at error level with fmt.Sprintf semantics.
func (l *Logger) Errorf(format string, v ...interface{}) {
	if l != nil {
		l.sugar.Errorf(format, v...)
	}
}

// Error logs an error value at error level.
func (l *Logger) Error(err error) {
	if l != nil {
		l.sugar.Errorw(err.Error())
	}
}

// Warn logs an error value at warning level.
func (l *Logger) Warn(err error) {
	if l != nil {
		l.sugar.Warnw(err.Error())
	}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() {
	if l != nil {
		_ = l.sugar.Sync()
	}
}

// lineWriter is an io.Writer that splits its input stream into lines and
// writes each complete line to an underlying callback. It exists because
// structured loggers operate on discrete records, not raw byte streams, and
// subprocess stdout/stderr (rclone's progress output, in particular) arrives
// as an unbounded byte stream that must be split into log lines as it comes
// in rather than buffered in full.
type lineWriter struct {
	callback func(string)
	buffer   []byte
}

func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *lineWriter) Write(buffer []byte) (int, error) {
	w.buffer = append(w.buffer, buffer...)

	var processed int
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		processed += index + 1
		remaining = remaining[index+1:]
	}

	if processed > 0 {
		leftover := len(w.buffer) - processed
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}
		w.buffer = w.buffer[:leftover]
	}

	return len(buffer), nil
}

// LineWriter returns an io.Writer that logs each line written to it at debug
// level. It's intended for capturing a subprocess' stderr/stdout stream.
func (l *Logger) LineWriter() io.Writer {
	if l == nil {
		return ioutil.Discard
	}
	return &lineWriter{callback: l.Debug}
}
