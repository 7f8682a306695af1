// Package resolve derives the current state of asset lineages from their
// snapshot history. It is pure computation; persistence and transport live
// elsewhere.
package resolve

import (
	"time"

	"github.com/patrimonyd/patrimonyd/internal/domain"
)

// Latest picks the authoritative snapshot per lineage, where a lineage is the
// set of snapshots sharing (name, owner). If cutoff is non-nil, snapshots with
// an effective date after it are ignored before grouping. Within each lineage
// the snapshot with the maximal effective date wins; on an exact date tie the
// lexicographically smaller id wins, so the result does not depend on input
// order. Winners that are not active are dropped: an inactive newest snapshot
// silences its whole lineage even when older active snapshots exist.
//
// The returned slice has no ordering guarantee; callers wanting stable display
// order sort it themselves. Runs in O(n) time and O(k) space for k lineages.
func Latest(snaps []*domain.Snapshot, cutoff *time.Time) []*domain.Snapshot {
	winners := make(map[lineageKey]*domain.Snapshot)

	for _, s := range snaps {
		if cutoff != nil && s.EffectiveDate.After(*cutoff) {
			continue
		}
		key := lineageKey{name: s.Name, owner: s.OwnerID.String()}
		cur, ok := winners[key]
		if !ok || beats(s, cur) {
			winners[key] = s
		}
	}

	out := make([]*domain.Snapshot, 0, len(winners))
	for _, s := range winners {
		if s.Status == domain.StatusActive {
			out = append(out, s)
		}
	}
	return out
}

type lineageKey struct {
	name  string
	owner string
}

// beats reports whether candidate replaces incumbent as the lineage winner.
func beats(candidate, incumbent *domain.Snapshot) bool {
	if candidate.EffectiveDate.After(incumbent.EffectiveDate) {
		return true
	}
	if candidate.EffectiveDate.Equal(incumbent.EffectiveDate) {
		return candidate.ID.String() < incumbent.ID.String()
	}
	return false
}
