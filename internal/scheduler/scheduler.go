// Package scheduler implements the Pass Scheduler (spec.md §4.E):
// dependency resolution, missing-hard-dependency injection, and
// topological group extraction with executeFirst/executeLast handling.
package scheduler

import (
	"sort"

	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// Resolver constructs a pass given its registered name, for the
// missing-hard-dependency injection step (spec.md §4.E step 2). Callers
// typically back this with a builtin pass registry; Schedule treats a
// resolver that cannot find name as a ConfigurationError, since an
// unsatisfiable hard dependency cannot be scheduled.
type Resolver func(name string) (passdesc.Pass, bool)

// Group is a set of passes with no ordering constraint between them. They
// may run concurrently when UseParallelPasses is set (spec.md §4.E,
// final paragraph).
type Group []passdesc.Pass

// Schedule runs the algorithm of spec.md §4.E over passes, using resolve
// to instantiate any hard dependency that was not explicitly registered.
// It returns the registered-or-injected passes grouped for execution, in
// group order.
func Schedule(passes []passdesc.Pass, resolve Resolver) ([]Group, error) {
	byName := make(map[string]passdesc.Pass, len(passes))
	var order []string // preserves first-seen order for deterministic output
	for _, p := range passes {
		name := p.Descriptor().Name
		if _, dup := byName[name]; dup {
			continue
		}
		byName[name] = p
		order = append(order, name)
	}

	// executeBefore(Q) installs a soft edge this -> Q on Q (spec.md §4.E
	// "equivalent to a soft edge this -> Q installed on Q"): build that
	// reverse-soft-dependency map before walking hard/soft predecessor
	// sets, so it can simply be merged into Q's soft deps below.
	beforeAsSoft := make(map[string][]string)
	for _, name := range order {
		for _, q := range byName[name].Descriptor().Before {
			beforeAsSoft[q] = append(beforeAsSoft[q], name)
		}
	}

	// Step 2: add missing hard dependencies transitively, to fixpoint.
	for i := 0; i < len(order); i++ {
		name := order[i]
		for _, dep := range byName[name].Descriptor().HardDeps {
			if _, ok := byName[dep]; ok {
				continue
			}
			p, ok := resolve(dep)
			if !ok {
				return nil, cpgerr.NewConfigurationError(
					"pass %q has unregistered hard dependency %q with no known builtin", name, dep)
			}
			byName[dep] = p
			order = append(order, dep)
		}
	}

	// Step 1 (now that the pass set is closed): collect predecessor sets.
	pred := make(map[string]map[string]bool, len(order))
	for _, name := range order {
		pred[name] = make(map[string]bool)
	}
	for _, name := range order {
		d := byName[name].Descriptor()
		for _, dep := range d.HardDeps {
			pred[name][dep] = true
		}
		for _, dep := range d.SoftDeps {
			if _, present := byName[dep]; present {
				pred[name][dep] = true
			}
		}
	}
	for q, fronts := range beforeAsSoft {
		if _, present := byName[q]; !present {
			continue
		}
		for _, name := range fronts {
			pred[q][name] = true
		}
	}

	var first, last string
	firstCount, lastCount := 0, 0
	for _, name := range order {
		d := byName[name].Descriptor()
		if d.First {
			first = name
			firstCount++
		}
		if d.Last {
			last = name
			lastCount++
		}
	}
	if firstCount > 1 {
		return nil, cpgerr.NewConfigurationError("too many first passes")
	}
	if lastCount > 1 {
		return nil, cpgerr.NewConfigurationError("too many last passes")
	}

	var groups []Group
	remaining := make(map[string]bool, len(order))
	for _, name := range order {
		remaining[name] = true
	}

	// Step 3: executeFirst singleton group.
	if firstCount == 1 {
		groups = append(groups, Group{byName[first]})
		delete(remaining, first)
		for _, preds := range pred {
			delete(preds, first)
		}
	}

	// Step 4: repeatedly emit the set of passes with no remaining
	// predecessors, excluding executeLast until the very end.
	for len(remaining) > 0 {
		if lastCount == 1 && len(remaining) == 1 && remaining[last] {
			break
		}
		var ready []string
		for name := range remaining {
			if name == last {
				continue
			}
			if len(pred[name]) == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			return nil, cpgerr.NewConfigurationError("failed to satisfy ordering requirements")
		}
		sort.Strings(ready) // deterministic group membership order
		group := make(Group, 0, len(ready))
		for _, name := range ready {
			group = append(group, byName[name])
			delete(remaining, name)
		}
		for _, preds := range pred {
			for _, name := range ready {
				delete(preds, name)
			}
		}
		groups = append(groups, group)
	}

	// Step 5: executeLast singleton group.
	if lastCount == 1 {
		groups = append(groups, Group{byName[last]})
	}

	return groups, nil
}
