// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"log/slog"

	"github.com/ik5/audsrc/observe"
)

type options struct {
	logger  *slog.Logger
	metrics *observe.Metrics
}

// Option configures data sources built by this package.
type Option func(*options)

// WithLogger sets the logger used for debug events. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records reads and rewinds into m.
func WithMetrics(m *observe.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func withResolved(r options) Option {
	return func(o *options) {
		*o = r
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
