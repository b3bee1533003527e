package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
)

func TestIsIndexExists(t *testing.T) {
	var dup meilisearch.Error
	dup.MeilisearchApiError.Code = "index_already_exists"
	assert.True(t, isIndexExists(&dup))

	wrapped := fmt.Errorf("init indexes: %w", &dup)
	assert.True(t, isIndexExists(wrapped))

	var other meilisearch.Error
	other.MeilisearchApiError.Code = "invalid_api_key"
	assert.False(t, isIndexExists(&other))

	assert.False(t, isIndexExists(errors.New("index already exists")))
	assert.False(t, isIndexExists(nil))
}
