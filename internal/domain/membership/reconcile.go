// Package membership computes the changes needed to bring a many-to-many
// association in line with a desired set of ids.
package membership

// Plan lists the ids to unlink and to link. Both are free of duplicates.
type Plan[K comparable] struct {
	Remove []K
	Add    []K
}

// Empty reports whether applying the plan would change nothing.
func (p Plan[K]) Empty() bool { return len(p.Remove) == 0 && len(p.Add) == 0 }

// Reconcile diffs the current associations against desired.
// existing is the subset of desired known to the storage; desired ids missing
// from it are dropped without error. Remove keeps the order of current and Add
// keeps the order of desired, so applying a plan twice yields an empty second plan.
func Reconcile[K comparable](current, desired, existing []K) Plan[K] {
	want := make(map[K]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	known := make(map[K]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	var plan Plan[K]
	have := make(map[K]struct{}, len(current))
	for _, id := range current {
		if _, dup := have[id]; dup {
			continue
		}
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			plan.Remove = append(plan.Remove, id)
		}
	}

	added := make(map[K]struct{})
	for _, id := range desired {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, ok := have[id]; ok {
			continue
		}
		if _, ok := added[id]; ok {
			continue
		}
		added[id] = struct{}{}
		plan.Add = append(plan.Add, id)
	}
	return plan
}

// Unique drops repeated ids, keeping first occurrences.
func Unique[K comparable](ids []K) []K {
	seen := make(map[K]struct{}, len(ids))
	out := make([]K, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
