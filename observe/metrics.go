// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments recorded by audio
// data source pipelines. Build a [Metrics] from any [metric.MeterProvider];
// tests use a ManualReader backed provider.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/ik5/audsrc"

// Metrics holds the metric instruments of a pipeline. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// BlocksRead counts blocks returned by the innermost data source.
	BlocksRead metric.Int64Counter

	// BytesRead counts PCM bytes returned by the innermost data source.
	BytesRead metric.Int64Counter

	// Rewinds counts rewinds. Use with attribute:
	//   attribute.String("kind", "seek"|"replay")
	Rewinds metric.Int64Counter
}

// NewMetrics creates the instruments using the given [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BlocksRead, err = m.Int64Counter("audsrc.blocks.read",
		metric.WithDescription("Blocks read from the audio source."),
	); err != nil {
		return nil, err
	}
	if met.BytesRead, err = m.Int64Counter("audsrc.bytes.read",
		metric.WithDescription("PCM bytes read from the audio source."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if met.Rewinds, err = m.Int64Counter("audsrc.rewinds",
		metric.WithDescription("Pipeline rewinds by kind."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordRead records one block of n bytes.
func (m *Metrics) RecordRead(n int) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.BlocksRead.Add(ctx, 1)
	m.BytesRead.Add(ctx, int64(n))
}

// RecordRewind records a rewind of the given kind.
func (m *Metrics) RecordRewind(kind string) {
	if m == nil {
		return
	}
	m.Rewinds.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}
