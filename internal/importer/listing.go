// Package importer creates property drafts from public listing pages.
package importer

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"real-estate-crm/internal/config"
	"real-estate-crm/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// ListingImporter fetches a listing page and extracts a property draft
// from its OpenGraph/meta tags.
type ListingImporter struct {
	client     *http.Client
	maxRetries int
	userAgent  string
}

func NewListingImporter(cfg config.ImporterConfig) *ListingImporter {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &ListingImporter{
		client:     &http.Client{Timeout: cfg.GetTimeout()},
		maxRetries: retries,
		userAgent:  cfg.UserAgent,
	}
}

var priceRe = regexp.MustCompile(`[\d][\d,.]*`)

// FetchListing downloads the page and returns a property draft. The
// caller fills in listing_type, agent and contact before saving.
func (li *ListingImporter) FetchListing(url string) (*models.Property, error) {
	doc, err := li.fetchDocument(url)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		Title:       metaContent(doc, `meta[property="og:title"]`),
		Description: metaContent(doc, `meta[property="og:description"]`),
		SourceURL:   url,
	}

	if property.Title == "" {
		property.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if property.Title == "" {
		return nil, fmt.Errorf("no title found at %s", url)
	}

	if addr := metaContent(doc, `meta[property="og:street-address"]`); addr != "" {
		property.Address = addr
	}
	if priceText := metaContent(doc, `meta[property="product:price:amount"]`); priceText != "" {
		if price, err := strconv.ParseFloat(priceText, 64); err == nil {
			property.Price = &price
		}
	}
	if property.Price == nil {
		// Fall back to a price-looking number in the description
		if m := priceRe.FindString(property.Description); m != "" {
			cleaned := strings.ReplaceAll(m, ",", "")
			if price, err := strconv.ParseFloat(cleaned, 64); err == nil && price > 1000 {
				property.Price = &price
			}
		}
	}

	return property, nil
}

// fetchDocument gets the page with retries on network errors and 5xx
func (li *ListingImporter) fetchDocument(url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt < li.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}

		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if li.userAgent != "" {
			req.Header.Set("User-Agent", li.userAgent)
		}

		resp, err := li.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse page: %w", err)
		}
		return doc, nil
	}

	return nil, fmt.Errorf("failed to fetch %s after %d attempts: %w", url, li.maxRetries, lastErr)
}

// metaContent returns the content attribute of the first matching meta tag
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
