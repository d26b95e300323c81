package source_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ecomsimply/price-truth/internal/fetcher"
	"github.com/ecomsimply/price-truth/internal/source"
	"github.com/ecomsimply/price-truth/internal/source/mocks"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	sourceName = "amazon"
	searchURL  = "https://www.amazon.fr/s?k=%s"
	selector   = `<span class="a-offscreen">([\d\s,.]+)\s*€</span>`
)

func TestUnitNewHTTPSource(t *testing.T) {
	tests := map[string]struct {
		selector string
		wantErr  string
	}{
		"ok": {
			selector: selector,
		},
		"invalid regexp": {
			selector: `([`,
			wantErr:  "can't compile price selector",
		},
		"no capture group": {
			selector: `\d+,\d+`,
			wantErr:  "has no capture group",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			src, err := source.NewHTTPSource(sourceName, &mocks.PageFetcher{}, searchURL, tt.selector, "EUR")

			if tt.wantErr != "" {
				assert.Nil(t, src, "shouldn't return a source")
				require.ErrorContains(t, err, tt.wantErr, "should return correct error")
				return
			}

			require.NoError(t, err, "shouldn't return any errors")
			assert.Equal(t, sourceName, src.Name(), "should return correct source name")
		})
	}
}

func TestUnitExtractPrice(t *testing.T) {
	tests := map[string]struct {
		page         string
		wantPrice    string
		wantErrorMsg string
	}{
		"plain price": {
			page:      `<span class="a-offscreen">1299.00 €</span>`,
			wantPrice: "1299.00",
		},
		"comma decimal separator": {
			page:      `<span class="a-offscreen">129,99 €</span>`,
			wantPrice: "129.99",
		},
		"non-breaking space thousands separator": {
			page:      `<span class="a-offscreen">1 299,00 €</span>`,
			wantPrice: "1299.00",
		},
		"price not on page": {
			page:         `<html><body>no results</body></html>`,
			wantErrorMsg: "price not found on page",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pageFetcher := &mocks.PageFetcher{}
			pageFetcher.On("FetchPage", mock.Anything, "https://www.amazon.fr/s?k=iphone+15+pro").
				Return(io.NopCloser(strings.NewReader(tt.page)), nil).
				Once()

			src, err := source.NewHTTPSource(sourceName, pageFetcher, searchURL, selector, "EUR")
			require.NoError(t, err, "shouldn't return any errors")

			extraction, err := src.ExtractPrice(context.TODO(), "iphone 15 pro")

			require.NoError(t, err, "shouldn't return any errors")
			require.NotNil(t, extraction, "should return an extraction")
			assert.Equal(t, "EUR", extraction.Currency, "should set source currency")
			assert.Equal(t, "https://www.amazon.fr/s?k=iphone+15+pro", extraction.URL, "should record the fetched url")

			if tt.wantErrorMsg != "" {
				assert.False(t, extraction.Success, "extraction shouldn't be successful")
				assert.Nil(t, extraction.Price, "shouldn't return any price")
				assert.Equal(t, tt.wantErrorMsg, lo.FromPtr(extraction.ErrorMessage), "should explain the failure")
			} else {
				assert.True(t, extraction.Success, "extraction should be successful")
				require.NotNil(t, extraction.Price, "should return a price")
				assert.True(
					t,
					extraction.Price.Equal(decimal.RequireFromString(tt.wantPrice)),
					"should return price %s, got %s", tt.wantPrice, extraction.Price.String(),
				)
			}
			pageFetcher.AssertExpectations(t)
		})
	}
}

func TestUnitExtractPriceBadStatus(t *testing.T) {
	pageFetcher := &mocks.PageFetcher{}
	pageFetcher.On("FetchPage", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, fetcher.ErrStatusNotOK).
		Once()

	src, err := source.NewHTTPSource(sourceName, pageFetcher, searchURL, selector, "EUR")
	require.NoError(t, err, "shouldn't return any errors")

	extraction, err := src.ExtractPrice(context.TODO(), "iphone 15 pro")

	require.NoError(t, err, "bad response status shouldn't be an error")
	require.NotNil(t, extraction, "should return an extraction")
	assert.False(t, extraction.Success, "extraction shouldn't be successful")
	assert.Contains(t, lo.FromPtr(extraction.ErrorMessage), "not 200 OK", "should explain the failure")
}

func TestUnitExtractPriceFetchError(t *testing.T) {
	pageFetcher := &mocks.PageFetcher{}
	pageFetcher.On("FetchPage", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, io.ErrUnexpectedEOF).
		Once()

	src, err := source.NewHTTPSource(sourceName, pageFetcher, searchURL, selector, "EUR")
	require.NoError(t, err, "shouldn't return any errors")

	extraction, err := src.ExtractPrice(context.TODO(), "iphone 15 pro")

	assert.Nil(t, extraction, "shouldn't return an extraction")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "should return the fetch error")
}
