package engine

import "time"

// MetricsSnapshot is a point-in-time copy of the engine's running counters.
type MetricsSnapshot struct {
	CommandsProcessed    int                 `json:"commands_processed"`
	AverageExecutionTime time.Duration       `json:"average_execution_time"`
	SuccessRate          float64             `json:"success_rate"`
	RuleChainUsage       map[CommandType]int `json:"rule_chain_usage"`
}

// Metrics returns a snapshot of the running execution counters. The usage
// map is copied; mutating it does not affect the engine.
func (e *Engine) Metrics() MetricsSnapshot {
	snap := MetricsSnapshot{
		CommandsProcessed: e.processed,
		RuleChainUsage:    make(map[CommandType]int, len(e.usage)),
	}
	if e.processed > 0 {
		snap.AverageExecutionTime = e.totalDuration / time.Duration(e.processed)
		snap.SuccessRate = float64(e.succeeded) / float64(e.processed)
	}
	for k, v := range e.usage {
		snap.RuleChainUsage[k] = v
	}
	return snap
}
