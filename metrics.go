package kafunk

import metrics "github.com/rcrowley/go-metrics"

// groupMetrics bundles the counters and meters the generation engine and its
// loops report through, mirroring the metricRegistry field sarama's consumer
// keeps on the consumer struct.
type groupMetrics struct {
	registry metrics.Registry

	heartbeatsSent   metrics.Meter
	heartbeatsFailed metrics.Meter
	commitsSent      metrics.Meter
	commitsFailed    metrics.Meter
	fetchesEmpty     metrics.Meter
	rebalances       metrics.Counter
	generationAge    metrics.Timer
}

func newGroupMetrics(registry metrics.Registry, group string) *groupMetrics {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	named := func(name string) string { return "consumer-group." + group + "." + name }
	return &groupMetrics{
		registry:         registry,
		heartbeatsSent:   metrics.GetOrRegisterMeter(named("heartbeats-sent"), registry),
		heartbeatsFailed: metrics.GetOrRegisterMeter(named("heartbeats-failed"), registry),
		commitsSent:      metrics.GetOrRegisterMeter(named("commits-sent"), registry),
		commitsFailed:    metrics.GetOrRegisterMeter(named("commits-failed"), registry),
		fetchesEmpty:     metrics.GetOrRegisterMeter(named("fetches-empty"), registry),
		rebalances:       metrics.GetOrRegisterCounter(named("rebalances"), registry),
		generationAge:    metrics.GetOrRegisterTimer(named("generation-age"), registry),
	}
}
