package server

import (
	"time"

	"github.com/apiverify/reportgen/internal/model"
)

// SetRenderForTest substitutes the payload-to-PDF pipeline so tests
// can exercise the timeout and failure branches.
func (s *Server) SetRenderForTest(fn func(*model.ValidationReport) ([]byte, error)) {
	s.renderFn = fn
}

// SetTimeoutForTest shortens the render budget.
func (s *Server) SetTimeoutForTest(d time.Duration) {
	s.timeout = d
}
