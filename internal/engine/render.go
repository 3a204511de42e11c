package engine

import (
	"fmt"
	"sort"
	"strings"

	"grimm.is/relayfw/internal/fwp"
)

// Filters returns all installed filters in deterministic order: sublayer
// weight, then filter weight descending, then key.
func (e *Engine) Filters() []InstalledFilter {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]InstalledFilter, 0, len(e.filters))
	for _, inst := range e.filters {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		si := e.sublayers[out[i].Filter.Sublayer]
		sj := e.sublayers[out[j].Filter.Sublayer]
		if si.Weight != sj.Weight {
			return si.Weight < sj.Weight
		}
		if out[i].Filter.Weight != out[j].Filter.Weight {
			return out[i].Filter.Weight > out[j].Filter.Weight
		}
		return out[i].Filter.Key.String() < out[j].Filter.Key.String()
	})
	return out
}

// Render returns a textual dump of engine state suitable for show/diff.
// Output is deterministic for identical state.
func (e *Engine) Render() string {
	filters := e.Filters()

	e.mu.Lock()
	subs := make([]Sublayer, 0, len(e.sublayers))
	for _, s := range e.sublayers {
		subs = append(subs, s)
	}
	e.mu.Unlock()

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Weight != subs[j].Weight {
			return subs[i].Weight < subs[j].Weight
		}
		return subs[i].Name < subs[j].Name
	})

	var b strings.Builder
	for _, s := range subs {
		fmt.Fprintf(&b, "sublayer %q weight=%d key=%s\n", s.Name, s.Weight, s.Key)
		for _, inst := range filters {
			if inst.Filter.Sublayer != s.Key {
				continue
			}
			f := inst.Filter
			fmt.Fprintf(&b, "  filter %s layer=%s weight=%s action=%s name=%q\n",
				f.Key, fwp.LayerName(f.Layer), f.Weight, f.Action, f.Name)
			for _, c := range inst.Conditions {
				fmt.Fprintf(&b, "    %s = %s\n", c.Field(), c.Value())
			}
		}
	}
	return b.String()
}
