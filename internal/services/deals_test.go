package services

import (
	"testing"

	"real-estate-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealCreateRequiresOwnedContact(t *testing.T) {
	db := newTestDB(t)
	agentA := newTestAgent(t, db)
	agentB := newTestAgent(t, db)
	svc := NewDealService(db)

	contact := newTestContact(t, db, agentA)

	// Linking someone else's contact fails
	err := svc.Create(&models.Deal{
		Title:     "123 Main St",
		ContactID: contact.ID,
		AgentID:   agentB,
	})
	require.ErrorIs(t, err, ErrNotFound)

	deal := &models.Deal{
		Title:     "123 Main St",
		ContactID: contact.ID,
		AgentID:   agentA,
	}
	require.NoError(t, svc.Create(deal))
	assert.Equal(t, models.DealStatusProspect, deal.Status)
}

func TestDealListPreloadsContact(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewDealService(db)
	contact := newTestContact(t, db, agentID)

	require.NoError(t, svc.Create(&models.Deal{
		Title:     "Condo sale",
		ContactID: contact.ID,
		AgentID:   agentID,
	}))

	deals, err := svc.List(agentID, DealListRequest{})
	require.NoError(t, err)
	require.Len(t, deals, 1)
	require.NotNil(t, deals[0].Contact)
	assert.Equal(t, "Jane", deals[0].Contact.FirstName)
}

func TestDealPipeline(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewDealService(db)
	contact := newTestContact(t, db, agentID)

	price1, price2 := 300000.0, 200000.0
	require.NoError(t, svc.Create(&models.Deal{
		Title: "A", ContactID: contact.ID, AgentID: agentID,
		Status: models.DealStatusNegotiation, Price: &price1,
	}))
	require.NoError(t, svc.Create(&models.Deal{
		Title: "B", ContactID: contact.ID, AgentID: agentID,
		Status: models.DealStatusNegotiation, Price: &price2,
	}))
	require.NoError(t, svc.Create(&models.Deal{
		Title: "C", ContactID: contact.ID, AgentID: agentID,
	}))

	stages, err := svc.Pipeline(agentID)
	require.NoError(t, err)

	// All stages come back in fixed order, empty ones included
	require.Len(t, stages, len(models.DealPipeline))
	for i, status := range models.DealPipeline {
		assert.Equal(t, status, stages[i].Status)
	}

	byStatus := make(map[models.DealStatus]PipelineStage)
	for _, stage := range stages {
		byStatus[stage.Status] = stage
	}
	assert.Equal(t, int64(2), byStatus[models.DealStatusNegotiation].Count)
	assert.Equal(t, 500000.0, byStatus[models.DealStatusNegotiation].Value)
	assert.Equal(t, int64(1), byStatus[models.DealStatusProspect].Count)
	assert.Equal(t, int64(0), byStatus[models.DealStatusClosedWon].Count)
}

func TestDealUpdateRecordsStatusMove(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewDealService(db)
	contact := newTestContact(t, db, agentID)

	deal := &models.Deal{Title: "Duplex", ContactID: contact.ID, AgentID: agentID}
	require.NoError(t, svc.Create(deal))

	updated, err := svc.Update(deal.ID, agentID, &models.Deal{
		Title:  "Duplex",
		Status: models.DealStatusClosedWon,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusClosedWon, updated.Status)

	var activities []models.Activity
	require.NoError(t, db.Where("activity_type = ?", models.ActivityDealStatusMoved).Find(&activities).Error)
	require.Len(t, activities, 1)
}

func TestDealSearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewDealService(db)
	contact := newTestContact(t, db, agentID)

	require.NoError(t, svc.Create(&models.Deal{
		Title: "50% stake purchase", ContactID: contact.ID, AgentID: agentID,
	}))
	require.NoError(t, svc.Create(&models.Deal{
		Title: "Full purchase", ContactID: contact.ID, AgentID: agentID,
	}))

	found, err := svc.List(agentID, DealListRequest{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "50% stake purchase", found[0].Title)
}

func TestDealExpectedCommission(t *testing.T) {
	price, rate := 500000.0, 3.0
	deal := models.Deal{Price: &price, CommissionRate: &rate}
	assert.Equal(t, 15000.0, deal.ExpectedCommission())

	assert.Zero(t, (&models.Deal{Price: &price}).ExpectedCommission())
	assert.Zero(t, (&models.Deal{}).ExpectedCommission())
}
