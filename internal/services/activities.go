package services

import (
	"log"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRecorder appends audit entries to a contact's timeline. Recording
// is best-effort: a failed insert is logged, never surfaced, so audit
// writes cannot fail the mutation they describe.
type ActivityRecorder struct {
	db *gorm.DB
}

func NewActivityRecorder(db *gorm.DB) *ActivityRecorder {
	return &ActivityRecorder{db: db}
}

func (r *ActivityRecorder) Record(agentID string, contactID *string, activityType, description string) {
	activity := models.Activity{
		ID:           uuid.NewString(),
		ContactID:    contactID,
		ActivityType: activityType,
		Description:  description,
		AgentID:      agentID,
	}
	if err := r.db.Create(&activity).Error; err != nil {
		log.Printf("Activity: failed to record %s: %v", activityType, err)
	}
}

// ActivityService reads the activity timeline
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ListByContact returns a contact's activity entries, newest first
func (s *ActivityService) ListByContact(contactID, agentID string, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var activities []models.Activity
	err := s.db.Where("contact_id = ? AND agent_id = ?", contactID, agentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// Recent returns the agent's latest activity across all contacts
func (s *ActivityService) Recent(agentID string, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	var activities []models.Activity
	err := s.db.Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
