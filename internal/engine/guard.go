// internal/engine/guard.go
package engine

// nextSelection returns the selection after choosing card, bounded by
// limit. Choosing a card already selected leaves the selection unchanged
// (it does not deselect). Overflow drops from the front: the most recent
// limit picks win over insertion order.
func nextSelection(selection []string, card string, limit int) []string {
	for _, c := range selection {
		if c == card {
			return selection
		}
	}
	out := append(append([]string(nil), selection...), card)
	if limit >= 1 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
