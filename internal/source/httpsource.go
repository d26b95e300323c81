package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ecomsimply/price-truth/internal/fetcher"
	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

//go:generate mockery --name PageFetcher --filename pagefetcher.go

// maxPageSize bounds how much of a scraped page is read.
const maxPageSize = 4 << 20

// PageFetcher fetches product pages.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPSource extracts prices from one retailer's search pages.
// The price is located by a regexp selector with a single capture group.
type HTTPSource struct {
	name      string
	fetcher   PageFetcher
	searchURL string
	selector  *regexp.Regexp
	currency  string
}

// NewHTTPSource returns new HTTPSource. The searchURL must contain one %s verb
// which receives the escaped search query.
func NewHTTPSource(name string, pageFetcher PageFetcher, searchURL, selector, currency string) (*HTTPSource, error) {
	compiled, err := regexp.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("can't compile price selector for %q: %w", name, err)
	}

	if compiled.NumSubexp() < 1 {
		return nil, fmt.Errorf("price selector for %q has no capture group", name)
	}

	return &HTTPSource{
		name:      name,
		fetcher:   pageFetcher,
		searchURL: searchURL,
		selector:  compiled,
		currency:  currency,
	}, nil
}

// Name returns the source identifier.
func (s *HTTPSource) Name() string {
	return s.name
}

// ExtractPrice fetches the search page for query and extracts the price with
// the source's selector. A page without a parseable price is a success=false
// result, not an error.
func (s *HTTPSource) ExtractPrice(ctx context.Context, query string) (*models.PriceExtraction, error) {
	pageURL := fmt.Sprintf(s.searchURL, url.QueryEscape(query))

	extraction := models.PriceExtraction{
		Currency:  s.currency,
		URL:       pageURL,
		Selector:  s.selector.String(),
		Timestamp: time.Now().UTC(),
	}

	page, err := s.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		if errors.Is(err, fetcher.ErrStatusNotOK) {
			extraction.ErrorMessage = lo.ToPtr(err.Error())
			return &extraction, nil
		}
		return nil, fmt.Errorf("can't fetch page: %w", err)
	}
	defer page.Close()

	body, err := io.ReadAll(io.LimitReader(page, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("can't read page: %w", err)
	}

	match := s.selector.FindSubmatch(body)
	if len(match) < 2 {
		extraction.ErrorMessage = lo.ToPtr("price not found on page")
		return &extraction, nil
	}

	price, err := parsePrice(string(match[1]))
	if err != nil {
		extraction.ErrorMessage = lo.ToPtr(fmt.Sprintf("can't parse price %q", match[1]))
		return &extraction, nil
	}

	extraction.Price = &price
	extraction.Success = true

	return &extraction, nil
}

// parsePrice parses a raw page price into a decimal.
// French retail pages use comma as decimal separator and non-breaking spaces
// as thousands separators.
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	return decimal.NewFromString(cleaned)
}
