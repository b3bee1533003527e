package services

import (
	"testing"
	"time"

	"real-estate-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentCreateValidation(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewAppointmentService(db)

	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)

	err := svc.Create(&models.Appointment{
		Title:     "Viewing",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
		AgentID:   agentID,
	})
	require.ErrorIs(t, err, ErrInvalid)

	err = svc.Create(&models.Appointment{
		Title:     "Viewing",
		StartTime: start,
		EndTime:   start,
		AgentID:   agentID,
	})
	require.ErrorIs(t, err, ErrInvalid)

	appt := &models.Appointment{
		Title:     "Viewing",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		AgentID:   agentID,
	}
	require.NoError(t, svc.Create(appt))
	assert.Equal(t, models.AppointmentStatusScheduled, appt.Status)
}

func TestAppointmentCreateRecordsActivity(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewAppointmentService(db)
	contact := newTestContact(t, db, agentID)

	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Create(&models.Appointment{
		Title:     "Open house",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		ContactID: &contact.ID,
		AgentID:   agentID,
	}))

	var activities []models.Activity
	require.NoError(t, db.Where("activity_type = ?", models.ActivityAppointmentBooked).Find(&activities).Error)
	require.Len(t, activities, 1)
	require.NotNil(t, activities[0].ContactID)
	assert.Equal(t, contact.ID, *activities[0].ContactID)
}

func TestAppointmentUpcoming(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewAppointmentService(db)

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	soon := now.Add(2 * time.Hour)
	later := now.Add(72 * time.Hour)

	for _, at := range []time.Time{later, past, soon} {
		require.NoError(t, svc.Create(&models.Appointment{
			Title:     "Appt " + at.Format("0102"),
			StartTime: at,
			EndTime:   at.Add(time.Hour),
			AgentID:   agentID,
		}))
	}

	upcoming, err := svc.Upcoming(agentID, now, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	// Soonest first, past ones excluded
	assert.WithinDuration(t, soon, upcoming[0].StartTime, time.Second)
	assert.WithinDuration(t, later, upcoming[1].StartTime, time.Second)
}

func TestAppointmentRangeFilter(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewAppointmentService(db)

	day1 := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day1, day2} {
		require.NoError(t, svc.Create(&models.Appointment{
			Title:     "Appt",
			StartTime: at,
			EndTime:   at.Add(time.Hour),
			AgentID:   agentID,
		}))
	}

	from := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	appts, err := svc.List(agentID, AppointmentListRequest{From: &from})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.WithinDuration(t, day2, appts[0].StartTime, time.Second)
}

func TestCommunicationLogAppendOnly(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewCommunicationService(db)
	contact := newTestContact(t, db, agentID)

	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Log(&models.Communication{
		ContactID:  contact.ID,
		CommType:   "call",
		Direction:  models.CommDirectionOutbound,
		Subject:    "Intro call",
		OccurredAt: older,
		AgentID:    agentID,
	}))
	require.NoError(t, svc.Log(&models.Communication{
		ContactID:  contact.ID,
		CommType:   "email",
		Direction:  models.CommDirectionInbound,
		Subject:    "Re: listings",
		OccurredAt: newer,
		AgentID:    agentID,
	}))

	comms, err := svc.ListByContact(contact.ID, agentID, 0)
	require.NoError(t, err)
	require.Len(t, comms, 2)
	assert.Equal(t, "email", comms[0].CommType)
	assert.Equal(t, "call", comms[1].CommType)
}

func TestCommunicationLogRejectsForeignContact(t *testing.T) {
	db := newTestDB(t)
	agentA := newTestAgent(t, db)
	agentB := newTestAgent(t, db)
	svc := NewCommunicationService(db)
	contact := newTestContact(t, db, agentA)

	err := svc.Log(&models.Communication{
		ContactID: contact.ID,
		CommType:  "call",
		Direction: models.CommDirectionOutbound,
		AgentID:   agentB,
	})
	require.ErrorIs(t, err, ErrNotFound)
}
