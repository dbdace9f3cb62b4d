package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// TeeWriter writes to every sink. A failing sink does not stop the others,
// the write only reports zero bytes when no sink accepted it.
type TeeWriter struct {
	sinks []io.Writer
}

func NewTeeWriter(sinks ...io.Writer) *TeeWriter {
	return &TeeWriter{sinks: sinks}
}

func (tw *TeeWriter) Write(p []byte) (int, error) {
	var err error
	written := false
	for _, sink := range tw.sinks {
		if _, sinkErr := sink.Write(p); sinkErr != nil {
			err = multierr.Append(err, sinkErr)
			continue
		}
		written = true
	}
	if !written && len(tw.sinks) > 0 {
		return 0, err
	}
	return len(p), err
}
