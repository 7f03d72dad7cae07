package logger

import "io"

// settings holds handler construction knobs for Init.
type settings struct {
	format string
	out    io.Writer
}

// Option applies a configuration option to the logger initialization.
type Option func(*settings)

// WithFormat selects the handler format: "text" (default) or "json".
func WithFormat(format string) Option {
	return func(s *settings) {
		if format == "text" || format == "json" {
			s.format = format
		}
	}
}

// WithOutput redirects log output, mainly for tests.
func WithOutput(out io.Writer) Option {
	return func(s *settings) {
		if out != nil {
			s.out = out
		}
	}
}
