package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecomsimply/price-truth/internal/fetcher"
	"github.com/ecomsimply/price-truth/internal/source"
	"github.com/stretchr/testify/require"
)

// PriceSelector matches the price markup of the fake retailer pages.
const PriceSelector = `<span class="price">([\d\s,.]+)\s*€</span>`

// NewRetailerServer starts a test server serving one search result page with
// the provided raw price string. The server is closed on test cleanup.
func NewRetailerServer(t *testing.T, price string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.Header().Add("Content-Type", "text/html")
		fmt.Fprintf(wrt, `<html><body><div class="result"><span class="price">%s €</span></div></body></html>`, price)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// NewUnavailableServer starts a test server answering every request with 503.
// The server is closed on test cleanup.
func NewUnavailableServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// NewRetailerSource builds an HTTPSource scraping the provided test server.
func NewRetailerSource(t *testing.T, name string, fet *fetcher.Fetcher, srv *httptest.Server) *source.HTTPSource {
	t.Helper()

	src, err := source.NewHTTPSource(name, fet, srv.URL+"/s?k=%s", PriceSelector, "EUR")
	require.NoError(t, err, "can't build source %q", name)

	return src
}
