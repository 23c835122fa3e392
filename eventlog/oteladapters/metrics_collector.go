package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/shelfwise/circulation-go/eventlog"
)

// MetricsCollector implements eventlog.ContextualMetricsCollector using
// OpenTelemetry metric instruments. Instruments are created lazily per metric
// name and cached for reuse.
type MetricsCollector struct {
	meter      metric.Meter
	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a metrics collector from an OpenTelemetry meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (c *MetricsCollector) RecordDuration(metricName string, duration time.Duration) {
	c.RecordDurationContext(context.Background(), metricName, duration)
}

func (c *MetricsCollector) IncrementCounter(metricName string) {
	c.IncrementCounterContext(context.Background(), metricName)
}

func (c *MetricsCollector) RecordValue(metricName string, value float64) {
	c.RecordValueContext(context.Background(), metricName, value)
}

func (c *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration) {
	histogram, err := c.getOrCreateHistogram(metricName)
	if err != nil {
		return
	}

	histogram.Record(ctx, duration.Seconds())
}

func (c *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string) {
	counter, err := c.getOrCreateCounter(metricName)
	if err != nil {
		return
	}

	counter.Add(ctx, 1)
}

func (c *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64) {
	gauge, err := c.getOrCreateGauge(metricName)
	if err != nil {
		return
	}

	gauge.Record(ctx, value)
}

func (c *MetricsCollector) getOrCreateHistogram(metricName string) (metric.Float64Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[metricName]; ok {
		return histogram, nil
	}

	histogram, err := c.meter.Float64Histogram(metricName, metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	c.histograms[metricName] = histogram

	return histogram, nil
}

func (c *MetricsCollector) getOrCreateCounter(metricName string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[metricName]; ok {
		return counter, nil
	}

	counter, err := c.meter.Int64Counter(metricName)
	if err != nil {
		return nil, err
	}

	c.counters[metricName] = counter

	return counter, nil
}

func (c *MetricsCollector) getOrCreateGauge(metricName string) (metric.Float64Gauge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gauge, ok := c.gauges[metricName]; ok {
		return gauge, nil
	}

	gauge, err := c.meter.Float64Gauge(metricName)
	if err != nil {
		return nil, err
	}

	c.gauges[metricName] = gauge

	return gauge, nil
}

var _ eventlog.ContextualMetricsCollector = (*MetricsCollector)(nil)
