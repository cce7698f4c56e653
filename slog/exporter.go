package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/DennisFaucher/aisalesplan"
)

// Ensure LoggingExporter implements aisalesplan.Exporter.
var _ aisalesplan.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   aisalesplan.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next aisalesplan.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export delegates to the wrapped exporter and logs the bytes written.
func (e *LoggingExporter) Export(w io.Writer, doc *aisalesplan.ExportDocument) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		e.logger.Info("export",
			"customer", doc.Customer,
			"theme", doc.Theme,
			"format", e.next.Extension(),
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(cw, doc)
}

// ContentType delegates to the wrapped exporter.
func (e *LoggingExporter) ContentType() string { return e.next.ContentType() }

// Extension delegates to the wrapped exporter.
func (e *LoggingExporter) Extension() string { return e.next.Extension() }

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
