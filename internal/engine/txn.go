package engine

import (
	"fmt"

	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/metrics"
)

// Txn stages filter additions and applies them to the engine in one commit.
// A compilation pass builds the full policy set through a transaction so a
// mid-set failure leaves the engine untouched.
type Txn struct {
	e      *Engine
	staged []stagedFilter
	done   bool
}

type stagedFilter struct {
	filter fwp.Filter
	conds  fwp.ConditionSet
}

// Begin opens a transaction. The transaction implements
// fwp.ObjectInstaller; stage filters through AddFilter, then Commit or
// Abort exactly once.
func (e *Engine) Begin() *Txn {
	return &Txn{e: e}
}

// AddFilter validates the submission against current engine state and
// stages it. Returns false if the engine would reject it.
func (t *Txn) AddFilter(f fwp.Filter, conds fwp.ConditionSet) bool {
	if t.done {
		return false
	}

	t.e.mu.Lock()
	reason := t.e.checkLocked(f, conds)
	t.e.mu.Unlock()

	if reason != "" {
		t.e.reject(f, reason)
		return false
	}
	t.staged = append(t.staged, stagedFilter{filter: f, conds: conds})
	return true
}

// Commit installs all staged filters. Submissions are re-checked under the
// engine lock; if any fails (the engine changed since staging), nothing is
// installed and an error is returned.
func (t *Txn) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true

	t.e.mu.Lock()
	defer t.e.mu.Unlock()

	for _, s := range t.staged {
		if reason := t.e.checkLocked(s.filter, s.conds); reason != "" {
			metrics.Get().AbortedTxns.Inc()
			return fmt.Errorf("commit failed for filter %s: %s", s.filter.Key, reason)
		}
	}
	for _, s := range t.staged {
		t.e.installLocked(s.filter, s.conds)
	}
	metrics.Get().CommittedTxns.Inc()
	t.e.log.Info("transaction committed", "filters", len(t.staged))
	return nil
}

// Abort discards all staged filters.
func (t *Txn) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.staged = nil
	metrics.Get().AbortedTxns.Inc()
}
