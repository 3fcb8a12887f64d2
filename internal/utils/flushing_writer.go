package utils

import (
	"io"
	"sync"
)

// FlushingWriter forwards writes to a wrapped writer and flushes it after
// every successful write. Interactive prompts rely on the wrapper so menu and
// question text reaches the terminal before the program blocks reading the
// response.
type FlushingWriter struct {
	destination io.Writer
	flush       func() error
	writeGuard  sync.Mutex
}

// NewFlushingWriter wraps the provided writer with per-write flushing. A nil
// writer yields nil and an already wrapped writer is returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if alreadyFlushing, wrapped := writer.(*FlushingWriter); wrapped {
		return alreadyFlushing
	}
	return &FlushingWriter{destination: writer, flush: flushFunctionFor(writer)}
}

// Write sends data to the wrapped writer and flushes buffered output so the
// text becomes visible immediately.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.destination == nil {
		return 0, nil
	}

	flushingWriter.writeGuard.Lock()
	defer flushingWriter.writeGuard.Unlock()

	writtenByteCount, writeError := flushingWriter.destination.Write(data)
	if writeError != nil {
		return writtenByteCount, writeError
	}
	if flushingWriter.flush == nil {
		return writtenByteCount, nil
	}
	return writtenByteCount, flushingWriter.flush()
}

// flushFunctionFor adapts both common flush signatures. Writers without a
// flush method need no adapter and report nil.
func flushFunctionFor(writer io.Writer) func() error {
	switch flushableWriter := writer.(type) {
	case interface{ Flush() error }:
		return flushableWriter.Flush
	case interface{ Flush() }:
		return func() error {
			flushableWriter.Flush()
			return nil
		}
	default:
		return nil
	}
}
