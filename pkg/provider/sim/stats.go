package sim

import (
	"math"
	"slices"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// statistic reduces values, which are in presentation order, to stat.
// values must not be empty.
func statistic(stat pm.Stat, values []float64) float64 {
	switch stat {
	case pm.StatNewestPoint:
		return values[len(values)-1]
	case pm.StatOldestPoint:
		return values[0]
	case pm.StatMidPoint:
		return values[len(values)/2]
	case pm.StatCount:
		return float64(len(values))
	case pm.StatNonZeroAvg:
		var sum float64
		var n int
		for _, v := range values {
			if v != 0 {
				sum += v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	case pm.StatMin:
		return slices.Min(values)
	case pm.StatMax:
		return slices.Max(values)
	case pm.StatPercentile99:
		return percentile(values, 0.99)
	case pm.StatPercentile95:
		return percentile(values, 0.95)
	case pm.StatPercentile90:
		return percentile(values, 0.90)
	case pm.StatPercentile10:
		return percentile(values, 0.10)
	case pm.StatPercentile05:
		return percentile(values, 0.05)
	case pm.StatPercentile01:
		return percentile(values, 0.01)
	case pm.StatMidLerp:
		return percentile(values, 0.5)
	default:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}

// percentile interpolates linearly between the closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
