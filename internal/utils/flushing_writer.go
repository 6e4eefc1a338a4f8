package utils

import "io"

type flusher interface {
	Flush() error
}

// FlushingWriter pushes prompt text through buffered console writers so it is
// visible before the session blocks on input.
type FlushingWriter struct {
	writer  io.Writer
	flusher flusher
}

// NewFlushingWriter wraps writer. Writers without a Flush method are written to directly.
func NewFlushingWriter(writer io.Writer) io.Writer {
	switch typedWriter := writer.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return typedWriter
	}
	flushingWriter := &FlushingWriter{writer: writer}
	if bufferedWriter, canFlush := writer.(flusher); canFlush {
		flushingWriter.flusher = bufferedWriter
	}
	return flushingWriter
}

// Write writes data and flushes the underlying writer.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}
	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil || flushingWriter.flusher == nil {
		return bytesWritten, writeError
	}
	return bytesWritten, flushingWriter.flusher.Flush()
}
