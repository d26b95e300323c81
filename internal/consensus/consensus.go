package consensus

import (
	"math"
	"sort"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Method is the label of the consensus algorithm.
const Method = "median_trim"

var (
	two        = decimal.NewFromInt(2)
	oneHundred = decimal.NewFromInt(100)
	iqrFactor  = decimal.NewFromFloat(1.5)
)

// Calculator computes price consensus from per-source observations.
// It is a pure function object, safe for concurrent use.
type Calculator struct {
	tolerancePct float64
	minSources   int
}

// NewCalculator returns a Calculator with the provided agreement tolerance
// (percent of the median) and the minimum number of agreeing sources
// required for a valid consensus.
func NewCalculator(tolerancePct float64, minSources int) Calculator {
	return Calculator{
		tolerancePct: tolerancePct,
		minSources:   minSources,
	}
}

// TolerancePct returns the configured agreement tolerance in percent.
func (c Calculator) TolerancePct() float64 {
	return c.tolerancePct
}

// MinSources returns the minimum number of agreeing sources for a valid consensus.
func (c Calculator) MinSources() int {
	return c.minSources
}

// Calculate computes consensus over sources. Input must already be filtered to
// successful extractions. It never fails, every input has a well-formed result.
//
// With three or more sources, prices outside the IQR bounds
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR] are excluded before the final median is
// computed. Quartiles are positional (indices (n-1)/4 and 3(n-1)/4 of the
// sorted prices), not interpolated; stored records depend on this exact
// indexing.
func (c Calculator) Calculate(sources []models.PriceSource) models.PriceConsensus {
	cons := models.PriceConsensus{
		Method:       Method,
		Outliers:     []string{},
		TolerancePct: c.tolerancePct,
		Status:       models.StatusInsufficientEvidence,
	}

	switch len(sources) {
	case 0:
		return cons
	case 1:
		// single observation is recorded but never authoritative
		cons.AgreeingSources = 1
		cons.MedianPrice = lo.ToPtr(sources[0].Price)
		return cons
	}

	prices := sourcePrices(sources)

	kept := sources
	if len(sources) >= 3 {
		kept, cons.Outliers = filterOutliers(sources, prices)
	}

	if len(kept) == 0 {
		cons.MedianPrice = lo.ToPtr(median(prices))
		cons.Stdev = stdev(prices)
		cons.Status = models.StatusOutlierDetected
		return cons
	}

	keptPrices := sourcePrices(kept)
	finalMedian := median(keptPrices)

	cons.MedianPrice = lo.ToPtr(finalMedian)
	cons.Stdev = stdev(keptPrices)
	cons.AgreeingSources = countAgreeing(keptPrices, finalMedian, c.tolerancePct)

	if cons.AgreeingSources >= c.minSources {
		cons.Status = models.StatusValid
	}

	return cons
}

func sourcePrices(sources []models.PriceSource) []decimal.Decimal {
	return lo.Map(sources, func(s models.PriceSource, _ int) decimal.Decimal {
		return s.Price
	})
}

// filterOutliers splits sources into kept sources and names of IQR outliers.
func filterOutliers(sources []models.PriceSource, prices []decimal.Decimal) ([]models.PriceSource, []string) {
	sorted := sortedCopy(prices)

	quart1 := sorted[(len(sorted)-1)/4]
	quart3 := sorted[3*(len(sorted)-1)/4]
	iqr := quart3.Sub(quart1)

	lower := quart1.Sub(iqr.Mul(iqrFactor))
	upper := quart3.Add(iqr.Mul(iqrFactor))

	kept := make([]models.PriceSource, 0, len(sources))
	outliers := []string{}
	for ix := range sources {
		if sources[ix].Price.Cmp(lower) < 0 || sources[ix].Price.Cmp(upper) > 0 {
			outliers = append(outliers, sources[ix].Name)
			continue
		}
		kept = append(kept, sources[ix])
	}

	return kept, outliers
}

// median returns the middle value of prices, or the mean of the two middle
// values when the count is even.
func median(prices []decimal.Decimal) decimal.Decimal {
	sorted := sortedCopy(prices)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(two)
}

// stdev returns the population standard deviation of prices.
// Unlike the prices themselves it is telemetry, so float64 precision is enough.
func stdev(prices []decimal.Decimal) float64 {
	if len(prices) < 2 {
		return 0
	}

	mean := 0.0
	for ix := range prices {
		mean += prices[ix].InexactFloat64()
	}
	mean /= float64(len(prices))

	variance := 0.0
	for ix := range prices {
		diff := prices[ix].InexactFloat64() - mean
		variance += diff * diff
	}
	variance /= float64(len(prices))

	return math.Sqrt(variance)
}

// countAgreeing counts prices within the inclusive tolerance band around the median.
func countAgreeing(prices []decimal.Decimal, median decimal.Decimal, tolerancePct float64) int {
	tolerance := median.Mul(decimal.NewFromFloat(tolerancePct)).Div(oneHundred)

	return lo.CountBy(prices, func(price decimal.Decimal) bool {
		return price.Sub(median).Abs().Cmp(tolerance) <= 0
	})
}

func sortedCopy(prices []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Cmp(sorted[j]) < 0
	})
	return sorted
}
