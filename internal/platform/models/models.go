package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsensusStatus is the outcome of one consensus round.
type ConsensusStatus string

const (
	// StatusValid means enough sources agree on the median price.
	StatusValid ConsensusStatus = "valid"
	// StatusInsufficientEvidence means there were not enough agreeing sources.
	StatusInsufficientEvidence ConsensusStatus = "insufficient_evidence"
	// StatusOutlierDetected means outlier filtering rejected every source.
	StatusOutlierDetected ConsensusStatus = "outlier_detected"
)

// PriceExtraction is a single source's price extraction attempt.
type PriceExtraction struct {
	Price          *decimal.Decimal
	Currency       string
	URL            string
	Selector       string
	ScreenshotPath *string
	Timestamp      time.Time
	Success        bool
	ErrorMessage   *string
}

// PriceSource is one source's observation retained for a lookup round.
// Price is meaningful only when Success is true.
type PriceSource struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	URL          string          `json:"url"`
	Selector     string          `json:"selector"`
	Screenshot   *string         `json:"screenshot,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	Success      bool            `json:"success"`
	ErrorMessage *string         `json:"errorMessage,omitempty"`
}

// PriceConsensus is the computed agreement outcome for one lookup round.
type PriceConsensus struct {
	Method          string           `json:"method"`
	AgreeingSources int              `json:"agreeingSources"`
	MedianPrice     *decimal.Decimal `json:"medianPrice"`
	Stdev           float64          `json:"stdev"`
	Outliers        []string         `json:"outliers"`
	TolerancePct    float64          `json:"tolerancePct"`
	Status          ConsensusStatus  `json:"status"`
}

// PriceTruth is the durable cached record for one product lookup.
// Each recomputation replaces Sources, Consensus, Value and UpdatedAt as a whole.
type PriceTruth struct {
	SKU       string           `json:"sku,omitempty"`
	Query     string           `json:"query,omitempty"`
	Currency  string           `json:"currency"`
	Value     *decimal.Decimal `json:"value"`
	Sources   []PriceSource    `json:"sources"`
	Consensus PriceConsensus   `json:"consensus"`
	UpdatedAt time.Time        `json:"updatedAt"`
	TTLHours  int              `json:"ttlHours"`
}

// Key returns the lookup key of the record, SKU when present, Query otherwise.
func (t *PriceTruth) Key() string {
	if t.SKU != "" {
		return t.SKU
	}
	return t.Query
}

// IsFresh reports whether the record is still inside its TTL window at now.
func (t *PriceTruth) IsFresh(now time.Time) bool {
	return now.Sub(t.UpdatedAt) < time.Duration(t.TTLHours)*time.Hour
}

// HasValidConsensus reports whether the record carries an authoritative price.
func (t *PriceTruth) HasValidConsensus() bool {
	return t.Value != nil && t.Consensus.Status == StatusValid
}

// Response projects the record into its client-facing view.
func (t *PriceTruth) Response(now time.Time) *PriceTruthResponse {
	resp := PriceTruthResponse{
		SKU:             t.SKU,
		Query:           t.Query,
		Currency:        t.Currency,
		Status:          t.Consensus.Status,
		SourcesCount:    len(t.Sources),
		AgreeingSources: t.Consensus.AgreeingSources,
		UpdatedAt:       t.UpdatedAt,
		IsFresh:         t.IsFresh(now),
		NextUpdateETA:   t.UpdatedAt.Add(time.Duration(t.TTLHours) * time.Hour),
	}

	if t.Value != nil {
		price := t.Value.InexactFloat64()
		resp.Price = &price
	}

	return &resp
}

// PriceTruthResponse is the client-facing projection of a PriceTruth record.
// It is derived on read and never stored.
type PriceTruthResponse struct {
	SKU             string          `json:"sku,omitempty"`
	Query           string          `json:"query,omitempty"`
	Price           *float64        `json:"price"`
	Currency        string          `json:"currency"`
	Status          ConsensusStatus `json:"status"`
	SourcesCount    int             `json:"sourcesCount"`
	AgreeingSources int             `json:"agreeingSources"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	IsFresh         bool            `json:"isFresh"`
	NextUpdateETA   time.Time       `json:"nextUpdateEta"`
}

// RefreshSummary is the result of one stale-records refresh batch.
type RefreshSummary struct {
	Found     int       `json:"found"`
	Refreshed int       `json:"refreshed"`
	Errors    int       `json:"errors"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceStats is a point-in-time snapshot of service counters and configuration.
type ServiceStats struct {
	Enabled             bool     `json:"enabled"`
	TTLHours            int      `json:"ttlHours"`
	TolerancePct        float64  `json:"tolerancePct"`
	MinSourcesRequired  int      `json:"minSourcesRequired"`
	TotalQueries        int64    `json:"totalQueries"`
	CacheHits           int64    `json:"cacheHits"`
	SuccessfulConsensus int64    `json:"successfulConsensus"`
	FailedConsensus     int64    `json:"failedConsensus"`
	SourcesQueried      int64    `json:"sourcesQueried"`
	SuccessRatePct      float64  `json:"successRatePct"`
	CacheRatePct        float64  `json:"cacheRatePct"`
	Sources             []string `json:"sources"`
}
