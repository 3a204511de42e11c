// Package engine provides an in-memory model of the platform filtering
// engine: providers, sublayers and filters keyed by stable GUIDs.
//
// Filters are replaced, not duplicated, when re-added under the same key,
// and a sublayer's filters can be removed as a unit, which is what makes
// recompilation from a fresh policy set idempotent. The engine is the only
// shared resource in the system and guards itself with a mutex; rule
// compilation stays single-threaded and synchronous.
package engine

import (
	"sync"
	"time"

	"grimm.is/relayfw/internal/clock"
	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/logging"
	"grimm.is/relayfw/internal/metrics"
)

// Sublayer is a named priority group of filters managed as a unit.
type Sublayer struct {
	Key    fwp.SublayerID
	Name   string
	Weight uint16
}

// InstalledFilter is a filter the engine currently holds.
type InstalledFilter struct {
	Filter     fwp.Filter
	Conditions fwp.ConditionSet
	Added      time.Time
}

// Engine is the in-memory filtering engine.
type Engine struct {
	mu        sync.Mutex
	log       *logging.Logger
	clk       clock.Clock
	providers map[fwp.ProviderID]string
	sublayers map[fwp.SublayerID]Sublayer
	filters   map[fwp.FilterKey]InstalledFilter
}

// New creates an empty engine.
func New(log *logging.Logger) *Engine {
	return NewWithClock(log, &clock.RealClock{})
}

// NewWithClock creates an engine with an injected time source.
func NewWithClock(log *logging.Logger, clk clock.Clock) *Engine {
	if log == nil {
		log = logging.Default()
	}
	return &Engine{
		log:       log.WithComponent("engine"),
		clk:       clk,
		providers: make(map[fwp.ProviderID]string),
		sublayers: make(map[fwp.SublayerID]Sublayer),
		filters:   make(map[fwp.FilterKey]InstalledFilter),
	}
}

// Bootstrap registers the product's provider and sublayers so compiled
// filters have somewhere to land. Sublayer weights order the groups
// relative to each other; filters never cross sublayers.
func Bootstrap(e *Engine, reg *identity.Registry, providerName string) {
	e.AddProvider(reg.Provider(), providerName)
	e.AddSublayer(Sublayer{Key: reg.SublayerBaseline(), Name: "baseline", Weight: 100})
	e.AddSublayer(Sublayer{Key: reg.SublayerDns(), Name: "dns", Weight: 110})
}

// AddProvider registers a provider. Re-adding the same key updates the name.
func (e *Engine) AddProvider(id fwp.ProviderID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.providers[id] = name
}

// AddSublayer registers a sublayer. Re-adding the same key replaces it.
func (e *Engine) AddSublayer(s Sublayer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sublayers[s.Key] = s
}

// AddFilter submits one filter directly, outside any transaction. It
// implements fwp.ObjectInstaller. Returns false with a logged reason when
// the submission is rejected.
func (e *Engine) AddFilter(f fwp.Filter, conds fwp.ConditionSet) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason := e.checkLocked(f, conds); reason != "" {
		e.reject(f, reason)
		return false
	}
	e.installLocked(f, conds)
	return true
}

// checkLocked validates a submission against engine state. Empty string
// means acceptable.
func (e *Engine) checkLocked(f fwp.Filter, conds fwp.ConditionSet) string {
	if err := f.Validate(); err != nil {
		e.log.Debug("filter validation failed", "error", err)
		return "invalid_filter"
	}
	if _, ok := e.providers[f.Provider]; !ok {
		return "unknown_provider"
	}
	if _, ok := e.sublayers[f.Sublayer]; !ok {
		return "unknown_sublayer"
	}
	if err := fwp.ValidateConditions(f.Layer, conds); err != nil {
		e.log.Debug("condition validation failed", "error", err)
		return "layer_family_mismatch"
	}
	return ""
}

func (e *Engine) installLocked(f fwp.Filter, conds fwp.ConditionSet) {
	_, replaced := e.filters[f.Key]
	e.filters[f.Key] = InstalledFilter{
		Filter:     f,
		Conditions: conds,
		Added:      e.clk.Now(),
	}
	sub := e.sublayers[f.Sublayer]
	metrics.Get().InstalledFilters.WithLabelValues(sub.Name).Set(float64(e.countSublayerLocked(f.Sublayer)))
	e.log.Debug("filter installed",
		"key", f.Key.String(),
		"layer", fwp.LayerName(f.Layer),
		"sublayer", sub.Name,
		"replaced", replaced)
}

func (e *Engine) reject(f fwp.Filter, reason string) {
	metrics.Get().RejectedSubmits.WithLabelValues(reason).Inc()
	e.log.Warn("filter rejected", "key", f.Key.String(), "reason", reason)
}

func (e *Engine) countSublayerLocked(key fwp.SublayerID) int {
	n := 0
	for _, inst := range e.filters {
		if inst.Filter.Sublayer == key {
			n++
		}
	}
	return n
}

// RemoveSublayer removes every filter in the given sublayer and returns how
// many were removed. This is the bulk-replace unit: one rule family can be
// flushed and recompiled without disturbing the others.
func (e *Engine) RemoveSublayer(key fwp.SublayerID) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := 0
	for k, inst := range e.filters {
		if inst.Filter.Sublayer == key {
			delete(e.filters, k)
			removed++
		}
	}
	sub := e.sublayers[key]
	metrics.Get().SublayerFlushes.WithLabelValues(sub.Name).Inc()
	metrics.Get().InstalledFilters.WithLabelValues(sub.Name).Set(0)
	e.log.Info("sublayer flushed", "sublayer", sub.Name, "removed", removed)
	return removed
}

// FilterCount returns the number of installed filters.
func (e *Engine) FilterCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.filters)
}

// Filter returns the installed filter with the given key, if any.
func (e *Engine) Filter(key fwp.FilterKey) (InstalledFilter, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inst, ok := e.filters[key]
	return inst, ok
}
