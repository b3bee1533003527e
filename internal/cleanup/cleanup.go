package cleanup

import (
	"time"

	"real-estate-crm/internal/models"

	"gorm.io/gorm"
)

// Service physically deletes old append-only log rows (activities and
// communications) past their retention window.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Result holds the outcome of one retention run
type Result struct {
	ActivitiesDeleted     int64     `json:"activities_deleted"`
	CommunicationsDeleted int64     `json:"communications_deleted"`
	ExecutedAt            time.Time `json:"executed_at"`
}

// Run deletes activities older than activityMaxDays and communications
// older than commsMaxDays. A non-positive limit disables that table's
// cleanup.
func (s *Service) Run(activityMaxDays, commsMaxDays int) (*Result, error) {
	result := &Result{ExecutedAt: time.Now()}

	if activityMaxDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -activityMaxDays)
		res := s.db.Where("created_at < ?", cutoff).Delete(&models.Activity{})
		if res.Error != nil {
			return result, res.Error
		}
		result.ActivitiesDeleted = res.RowsAffected
	}

	if commsMaxDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -commsMaxDays)
		res := s.db.Where("occurred_at < ?", cutoff).Delete(&models.Communication{})
		if res.Error != nil {
			return result, res.Error
		}
		result.CommunicationsDeleted = res.RowsAffected
	}

	return result, nil
}
