package services

import (
	"time"

	"real-estate-crm/internal/models"

	"gorm.io/gorm"
)

// DashboardService aggregates the stat-card numbers for an agent's
// dashboard in one call.
type DashboardService struct {
	db           *gorm.DB
	contacts     *ContactService
	deals        *DealService
	tasks        *TaskService
	appointments *AppointmentService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:           db,
		contacts:     NewContactService(db),
		deals:        NewDealService(db),
		tasks:        NewTaskService(db),
		appointments: NewAppointmentService(db),
	}
}

// DashboardStats is the aggregate payload behind the dashboard cards
type DashboardStats struct {
	TotalContacts        int64                          `json:"total_contacts"`
	ContactsByStatus     map[models.ContactStatus]int64 `json:"contacts_by_status"`
	ActiveDeals          int64                          `json:"active_deals"`
	Pipeline             []PipelineStage                `json:"pipeline"`
	PipelineValue        float64                        `json:"pipeline_value"`
	ClosedWonValue       float64                        `json:"closed_won_value"`
	TasksDueToday        int64                          `json:"tasks_due_today"`
	UpcomingAppointments []models.Appointment           `json:"upcoming_appointments"`
	ActiveListings       int64                          `json:"active_listings"`
}

// Stats collects the agent's dashboard numbers as of now
func (s *DashboardService) Stats(agentID string, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Contact{}).
		Where("assigned_agent_id = ?", agentID).
		Count(&stats.TotalContacts).Error; err != nil {
		return nil, err
	}

	byStatus, err := s.contacts.CountByStatus(agentID)
	if err != nil {
		return nil, err
	}
	stats.ContactsByStatus = byStatus

	pipeline, err := s.deals.Pipeline(agentID)
	if err != nil {
		return nil, err
	}
	stats.Pipeline = pipeline
	for _, stage := range pipeline {
		switch stage.Status {
		case models.DealStatusClosedWon:
			stats.ClosedWonValue = stage.Value
		case models.DealStatusClosedLost:
			// lost deals count toward neither total
		default:
			stats.ActiveDeals += stage.Count
			stats.PipelineValue += stage.Value
		}
	}

	dueToday, err := s.tasks.DueToday(agentID, now)
	if err != nil {
		return nil, err
	}
	stats.TasksDueToday = dueToday

	upcoming, err := s.appointments.Upcoming(agentID, now, 5)
	if err != nil {
		return nil, err
	}
	stats.UpcomingAppointments = upcoming

	if err := s.db.Model(&models.Property{}).
		Where("agent_id = ? AND listing_type = ? AND status = ?",
			agentID, models.ListingTypeMyListing, models.PropertyStatusActive).
		Count(&stats.ActiveListings).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
