package main

import (
	"fmt"

	ashttp "github.com/DennisFaucher/aisalesplan/http"
)

// Run executes the serve command. It blocks until the context is canceled
// and then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = discardLogger()
	}

	s := ashttp.NewServer()
	s.Addr = c.Addr
	s.Researcher = deps.Researcher
	s.ResearchService = deps.Research
	s.Exporter = deps.Exporter
	s.Converter = deps.Converter
	s.Logger = logger
	if c.Rate > 0 {
		s.Limiter = ashttp.NewClientLimiter(c.Rate, c.Burst)
	}
	if c.Metrics && deps.Metrics != nil {
		s.Metrics = deps.Metrics
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())
	logger.Info("server started", "addr", s.URL())

	<-deps.Ctx.Done()

	logger.Info("server stopping")
	return s.Close()
}
