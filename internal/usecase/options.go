package usecase

import "log/slog"

type settings struct {
	log *slog.Logger
}

// Option configures a usecase.
type Option func(*settings)

// WithLogger routes diagnostics to l. Without it they are only recorded in
// the domain.Report.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
