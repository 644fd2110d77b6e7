package services

import (
	"sort"

	"ledger/internal/models"
)

// rankPurchases computes the most-common ranking over an already-filtered
// candidate set. Candidates are partitioned by description; each partition
// is represented by its latest-dated row and weighted by the partition's
// total row count. Representatives are ordered by descending count and the
// result is truncated to limit entries when a limit is supplied.
//
// Two orderings are deliberately left loose, matching the storage-side
// behavior this replaces: when several rows within a partition share the
// latest date, the representative is the first such row in scan order, and
// descriptions with equal counts keep their first-seen relative order
// (sort.SliceStable). Both are stable for a given candidate order but
// callers must not rely on a particular choice.
func rankPurchases(candidates []models.Purchase, limit *int) []RankedPurchase {
	counts := make(map[string]int, len(candidates))
	latest := make(map[string]models.Purchase, len(candidates))
	var order []string

	for _, p := range candidates {
		if _, seen := counts[p.Description]; !seen {
			order = append(order, p.Description)
			latest[p.Description] = p
		} else if p.Date.After(latest[p.Description].Date) {
			latest[p.Description] = p
		}
		counts[p.Description]++
	}

	ranked := make([]RankedPurchase, 0, len(order))
	for _, description := range order {
		ranked = append(ranked, RankedPurchase{
			Purchase:    latest[description],
			Occurrences: counts[description],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Occurrences > ranked[j].Occurrences
	})

	if limit != nil && *limit >= 0 && *limit < len(ranked) {
		ranked = ranked[:*limit]
	}
	return ranked
}
