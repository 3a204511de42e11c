package rules

import (
	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/logging"
	"grimm.is/relayfw/internal/metrics"
)

// Batch applies an ordered rule set through one installer. Each rule
// produces fully independent filter objects, so a failed rule never
// partially applies another's filter; the batch stops at the first
// failure and leaves retry policy to the caller.
type Batch struct {
	log   *logging.Logger
	rules []Rule
}

// NewBatch creates an empty batch.
func NewBatch(log *logging.Logger) *Batch {
	if log == nil {
		log = logging.Default()
	}
	return &Batch{log: log.WithComponent("rules")}
}

// Add appends rules to the batch in application order.
func (b *Batch) Add(rules ...Rule) {
	b.rules = append(b.rules, rules...)
}

// Len returns the number of rules in the batch.
func (b *Batch) Len() int {
	return len(b.rules)
}

// Apply submits every rule in sequence. Returns false as soon as one rule
// fails to install.
func (b *Batch) Apply(installer fwp.ObjectInstaller) bool {
	for i, r := range b.rules {
		if !r.Apply(installer) {
			b.log.Error("rule install failed", "index", i, "total", len(b.rules))
			metrics.Get().BatchApplies.WithLabelValues("failure").Inc()
			return false
		}
	}
	b.log.Debug("rule set applied", "count", len(b.rules))
	metrics.Get().BatchApplies.WithLabelValues("success").Inc()
	return true
}
