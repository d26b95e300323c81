package modelstesting

import (
	"math/rand"
	"time"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakePrice returns a random two-decimal price below 1000.
func FakePrice() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(100000))).Div(decimal.NewFromInt(100))
}

// FakePriceSource returns models.PriceSource with fake data of a successful extraction.
func FakePriceSource(ops ...func(s *models.PriceSource)) models.PriceSource {
	source := models.PriceSource{
		Name:      faker.Word(),
		Price:     FakePrice(),
		Currency:  "EUR",
		URL:       faker.URL(),
		Selector:  faker.Word(),
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Success:   true,
	}

	for _, op := range ops {
		op(&source)
	}

	return source
}

// FakePriceTruth returns models.PriceTruth with fake data and a valid consensus
// over two agreeing sources.
func FakePriceTruth(ops ...func(t *models.PriceTruth)) models.PriceTruth {
	median := FakePrice()
	sources := []models.PriceSource{
		FakePriceSource(func(s *models.PriceSource) { s.Price = median }),
		FakePriceSource(func(s *models.PriceSource) { s.Price = median }),
	}

	truth := models.PriceTruth{
		SKU:      faker.Word(),
		Query:    faker.Word(),
		Currency: "EUR",
		Value:    lo.ToPtr(median),
		Sources:  sources,
		Consensus: models.PriceConsensus{
			Method:          "median_trim",
			AgreeingSources: len(sources),
			MedianPrice:     lo.ToPtr(median),
			Outliers:        []string{},
			TolerancePct:    3,
			Status:          models.StatusValid,
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
		TTLHours:  6,
	}

	for _, op := range ops {
		op(&truth)
	}

	return truth
}

// FakePriceExtraction returns models.PriceExtraction of a successful extraction.
func FakePriceExtraction(ops ...func(e *models.PriceExtraction)) models.PriceExtraction {
	extraction := models.PriceExtraction{
		Price:     lo.ToPtr(FakePrice()),
		Currency:  "EUR",
		URL:       faker.URL(),
		Selector:  faker.Word(),
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Success:   true,
	}

	for _, op := range ops {
		op(&extraction)
	}

	return extraction
}
