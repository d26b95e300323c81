package storage

import (
	"fmt"
	"strings"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	pgmodels "github.com/ecomsimply/price-truth/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// Prices are stored as text columns to keep decimal values exact.

func toDBPriceTruth(truth *models.PriceTruth) *pgmodels.PriceTruth {
	dbTruth := pgmodels.PriceTruth{
		LookupKey:       truth.Key(),
		Currency:        truth.Currency,
		Method:          truth.Consensus.Method,
		AgreeingSources: int32(truth.Consensus.AgreeingSources),
		Stdev:           truth.Consensus.Stdev,
		Outliers:        toDBOutliers(truth.Consensus.Outliers),
		TolerancePct:    truth.Consensus.TolerancePct,
		Status:          string(truth.Consensus.Status),
		UpdatedAt:       truth.UpdatedAt,
		TtlHours:        int32(truth.TTLHours),
	}

	if truth.SKU != "" {
		dbTruth.Sku = lo.ToPtr(truth.SKU)
	}
	if truth.Query != "" {
		dbTruth.Query = lo.ToPtr(truth.Query)
	}
	if truth.Value != nil {
		dbTruth.Value = lo.ToPtr(truth.Value.String())
	}
	if truth.Consensus.MedianPrice != nil {
		dbTruth.MedianPrice = lo.ToPtr(truth.Consensus.MedianPrice.String())
	}

	return &dbTruth
}

func fromDBPriceTruth(dbTruth *pgmodels.PriceTruth, dbSources []pgmodels.PriceSource) (*models.PriceTruth, error) {
	truth := models.PriceTruth{
		SKU:      lo.FromPtr(dbTruth.Sku),
		Query:    lo.FromPtr(dbTruth.Query),
		Currency: dbTruth.Currency,
		Consensus: models.PriceConsensus{
			Method:          dbTruth.Method,
			AgreeingSources: int(dbTruth.AgreeingSources),
			Stdev:           dbTruth.Stdev,
			Outliers:        fromDBOutliers(dbTruth.Outliers),
			TolerancePct:    dbTruth.TolerancePct,
			Status:          models.ConsensusStatus(dbTruth.Status),
		},
		UpdatedAt: dbTruth.UpdatedAt,
		TTLHours:  int(dbTruth.TtlHours),
	}

	var err error
	if truth.Value, err = fromDBPrice(dbTruth.Value); err != nil {
		return nil, fmt.Errorf("can't parse stored value: %w", err)
	}
	if truth.Consensus.MedianPrice, err = fromDBPrice(dbTruth.MedianPrice); err != nil {
		return nil, fmt.Errorf("can't parse stored median price: %w", err)
	}

	truth.Sources = make([]models.PriceSource, 0, len(dbSources))
	for ix := range dbSources {
		src, err := fromDBPriceSource(&dbSources[ix])
		if err != nil {
			return nil, err
		}
		truth.Sources = append(truth.Sources, src)
	}

	return &truth, nil
}

func toDBPriceSources(truthID int32, sources []models.PriceSource) []pgmodels.PriceSource {
	dbSources := make([]pgmodels.PriceSource, 0, len(sources))
	for ix := range sources {
		dbSources = append(dbSources, pgmodels.PriceSource{
			TruthID:      truthID,
			Position:     int32(ix),
			Name:         sources[ix].Name,
			Price:        sources[ix].Price.String(),
			Currency:     sources[ix].Currency,
			URL:          sources[ix].URL,
			Selector:     sources[ix].Selector,
			Screenshot:   sources[ix].Screenshot,
			CapturedAt:   sources[ix].Timestamp,
			ErrorMessage: sources[ix].ErrorMessage,
		})
	}
	return dbSources
}

func fromDBPriceSource(dbSource *pgmodels.PriceSource) (models.PriceSource, error) {
	price, err := decimal.NewFromString(dbSource.Price)
	if err != nil {
		return models.PriceSource{}, fmt.Errorf("can't parse stored source price: %w", err)
	}

	return models.PriceSource{
		Name:         dbSource.Name,
		Price:        price,
		Currency:     dbSource.Currency,
		URL:          dbSource.URL,
		Selector:     dbSource.Selector,
		Screenshot:   dbSource.Screenshot,
		Timestamp:    dbSource.CapturedAt,
		Success:      true, // only successful extractions are persisted
		ErrorMessage: dbSource.ErrorMessage,
	}, nil
}

func fromDBPrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}

	return &price, nil
}

func toDBOutliers(outliers []string) string {
	if len(outliers) == 0 {
		return ""
	}

	result := strings.Builder{}
	for ix, name := range outliers {
		if ix == len(outliers)-1 {
			result.WriteString(name)
			break
		}
		result.WriteString(fmt.Sprintf("%s\n", name))
	}
	return result.String()
}

func fromDBOutliers(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, "\n")
}
