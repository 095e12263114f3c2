package aggregate

import (
	"strings"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

// companyKey folds company names so "Acme" and "ACME " count once.
func companyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// labelOrUnknown is the grouping key for sectors and locations.
func labelOrUnknown(label string) string {
	if strings.TrimSpace(label) == "" {
		return models.UnknownLabel
	}
	return label
}

// groupSums accumulates counts per key, remembering first-seen order.
type groupSums struct {
	order []string
	sums  map[string]int
}

func newGroupSums() *groupSums {
	return &groupSums{sums: map[string]int{}}
}

func (g *groupSums) add(key string, n int) {
	if _, ok := g.sums[key]; !ok {
		g.order = append(g.order, key)
	}
	g.sums[key] += n
}

func (g *groupSums) total() int {
	total := 0
	for _, key := range g.order {
		total += g.sums[key]
	}
	return total
}

// top returns the key with the largest sum; the earliest key wins ties.
func (g *groupSums) top() (string, bool) {
	best, found := "", false
	for _, key := range g.order {
		if !found || g.sums[key] > g.sums[best] {
			best, found = key, true
		}
	}
	return best, found
}

func groupBySector(records []models.LayoffRecord) *groupSums {
	g := newGroupSums()
	for _, r := range records {
		g.add(labelOrUnknown(r.Sector), r.Affected())
	}
	return g
}

func groupByLocation(records []models.LayoffRecord) *groupSums {
	g := newGroupSums()
	for _, r := range records {
		g.add(labelOrUnknown(r.Location), r.Affected())
	}
	return g
}
