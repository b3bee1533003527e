package services

import (
	"testing"

	"real-estate-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestProperty(t *testing.T, db *gorm.DB, agentID string) *models.Property {
	t.Helper()

	property := &models.Property{
		Title:       "Sunny 2BR Condo",
		Address:     "45 Ocean Ave",
		ListingType: models.ListingTypeMyListing,
		AgentID:     agentID,
	}
	require.NoError(t, NewPropertyService(db).Create(property))
	return property
}

func TestPropertyCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)

	property := newTestProperty(t, db, agentID)
	assert.Equal(t, models.PropertyStatusActive, property.Status)

	got, err := svc.GetByID(property.ID, agentID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny 2BR Condo", got.Title)
	assert.Empty(t, got.Images)
}

func TestPropertyImagePositions(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)
	property := newTestProperty(t, db, agentID)

	first := &models.PropertyImage{URL: "https://img.example.com/1.jpg"}
	second := &models.PropertyImage{URL: "https://img.example.com/2.jpg"}
	require.NoError(t, svc.AddImage(property.ID, agentID, first))
	require.NoError(t, svc.AddImage(property.ID, agentID, second))

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)

	got, err := svc.GetByID(property.ID, agentID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, first.ID, got.Images[0].ID)
}

func TestPrimaryImageRule(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)
	property := newTestProperty(t, db, agentID)

	first := &models.PropertyImage{URL: "https://img.example.com/1.jpg"}
	second := &models.PropertyImage{URL: "https://img.example.com/2.jpg"}
	require.NoError(t, svc.AddImage(property.ID, agentID, first))
	require.NoError(t, svc.AddImage(property.ID, agentID, second))

	// No explicit flag yet: first by position wins
	got, err := svc.GetByID(property.ID, agentID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryImage())
	assert.Equal(t, first.ID, got.PrimaryImage().ID)

	require.NoError(t, svc.SetPrimaryImage(property.ID, second.ID, agentID))

	got, err = svc.GetByID(property.ID, agentID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryImage())
	assert.Equal(t, second.ID, got.PrimaryImage().ID)

	// Flag is exclusive
	flagged := 0
	for _, img := range got.Images {
		if img.IsPrimary {
			flagged++
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestPropertyDeleteRemovesImages(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)
	property := newTestProperty(t, db, agentID)

	require.NoError(t, svc.AddImage(property.ID, agentID, &models.PropertyImage{URL: "https://img.example.com/1.jpg"}))
	require.NoError(t, svc.Delete(property.ID, agentID))

	_, err := svc.GetByID(property.ID, agentID)
	require.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.PropertyImage{}).Where("property_id = ?", property.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPropertySearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)

	// "_" must match literally, not as a single-character wildcard
	require.NoError(t, svc.Create(&models.Property{
		Title: "Unit_7", ListingType: models.ListingTypeMyListing, AgentID: agentID,
	}))
	require.NoError(t, svc.Create(&models.Property{
		Title: "UnitX7", ListingType: models.ListingTypeMyListing, AgentID: agentID,
	}))

	found, err := svc.List(agentID, PropertyListRequest{Search: "Unit_7"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Unit_7", found[0].Title)
}

func TestPropertyListFilters(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewPropertyService(db)

	newTestProperty(t, db, agentID)
	require.NoError(t, svc.Create(&models.Property{
		Title:       "Client pick",
		ListingType: models.ListingTypeClientInterest,
		Status:      models.PropertyStatusPending,
		AgentID:     agentID,
	}))

	mine, err := svc.List(agentID, PropertyListRequest{ListingType: models.ListingTypeMyListing})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Sunny 2BR Condo", mine[0].Title)

	pending, err := svc.List(agentID, PropertyListRequest{Status: models.PropertyStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Client pick", pending[0].Title)
}
