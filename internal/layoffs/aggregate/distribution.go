package aggregate

import (
	"math"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

// DefaultTopIndustries is the number of sectors returned by IndustryDistribution.
const DefaultTopIndustries = 8

var sectorPalette = [...]string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#06B6D4", "#84CC16", "#F97316",
	"#EC4899", "#14B8A6", "#F472B6", "#A78BFA",
}

// IndustryDistribution returns each sector's rounded percentage share of the
// employees affected, largest first, limited to topN (DefaultTopIndustries when
// topN <= 0). A set with no known counts yields an empty slice.
func IndustryDistribution(records []models.LayoffRecord, topN int) []models.ChartPoint {
	if topN <= 0 {
		topN = DefaultTopIndustries
	}

	groups := groupBySector(records)
	total := groups.total()
	if total == 0 {
		return []models.ChartPoint{}
	}

	points := make([]models.ChartPoint, 0, len(groups.order))
	for _, name := range groups.order {
		points = append(points, models.ChartPoint{
			Name:  name,
			Value: int(math.Round(float64(groups.sums[name]) / float64(total) * 100)),
			Color: SectorColor(name),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	if len(points) > topN {
		points = points[:topN]
	}
	return points
}

// SectorColor picks a palette colour from a 31-multiplier hash of the lower-cased
// name. The arithmetic reproduces the dashboard's browser-side hash so stored
// colours stay stable: the shift wraps at 32 bits, the subtraction does not.
func SectorColor(sector string) string {
	var hash int64
	for _, unit := range utf16.Encode([]rune(strings.ToLower(sector))) {
		hash = int64(unit) + (int64(int32(hash)<<5) - hash)
	}
	if hash < 0 {
		hash = -hash
	}
	return sectorPalette[hash%int64(len(sectorPalette))]
}
