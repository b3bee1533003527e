package importer

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"real-estate-crm/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Bright 3BR Townhouse" />
<meta property="og:description" content="Renovated townhouse close to schools." />
<meta property="og:street-address" content="78 Maple Street" />
<meta property="product:price:amount" content="525000" />
</head>
<body><h1>Listing</h1></body>
</html>`

func newImporter() *ListingImporter {
	return NewListingImporter(config.ImporterConfig{
		TimeoutSeconds: 5,
		MaxRetries:     1,
		UserAgent:      "crm-test/1.0",
	})
}

func TestFetchListingExtractsMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "crm-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	property, err := newImporter().FetchListing(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Bright 3BR Townhouse", property.Title)
	assert.Equal(t, "Renovated townhouse close to schools.", property.Description)
	assert.Equal(t, "78 Maple Street", property.Address)
	assert.Equal(t, srv.URL, property.SourceURL)
	require.NotNil(t, property.Price)
	assert.Equal(t, 525000.0, *property.Price)
}

func TestFetchListingFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title> Plain Page </title></head><body></body></html>`))
	}))
	defer srv.Close()

	property, err := newImporter().FetchListing(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain Page", property.Title)
	assert.Nil(t, property.Price)
}

func TestFetchListingPriceFromDescription(t *testing.T) {
	page := `<html><head>
<meta property="og:title" content="Cottage" />
<meta property="og:description" content="Charming cottage listed at 315,000 this week." />
</head><body></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	property, err := newImporter().FetchListing(srv.URL)
	require.NoError(t, err)
	require.NotNil(t, property.Price)
	assert.Equal(t, 315000.0, *property.Price)
}

func TestFetchListingNoTitleFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head></head><body></body></html>`))
	}))
	defer srv.Close()

	_, err := newImporter().FetchListing(srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no title")
}

func TestFetchListingRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	li := NewListingImporter(config.ImporterConfig{TimeoutSeconds: 5, MaxRetries: 3})
	property, err := li.FetchListing(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bright 3BR Townhouse", property.Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchListingNoRetryOn4xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	li := NewListingImporter(config.ImporterConfig{TimeoutSeconds: 5, MaxRetries: 3})
	_, err := li.FetchListing(srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
