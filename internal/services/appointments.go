package services

import (
	"fmt"
	"time"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentService wraps appointment queries, always scoped by agent
type AppointmentService struct {
	db       *gorm.DB
	recorder *ActivityRecorder
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db, recorder: NewActivityRecorder(db)}
}

// AppointmentListRequest carries typed filter parameters
type AppointmentListRequest struct {
	Status    models.AppointmentStatus
	ContactID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

func (s *AppointmentService) Create(a *models.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.AppointmentStatusScheduled
	}
	if !models.ValidAppointmentStatus(a.Status) {
		return invalidf("invalid status %q", a.Status)
	}
	if a.Title == "" {
		return invalidf("title is required")
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return invalidf("start_time and end_time are required")
	}
	if !a.EndTime.After(a.StartTime) {
		return invalidf("end_time must be after start_time")
	}
	if a.AgentID == "" {
		return invalidf("agent_id is required")
	}

	if err := s.db.Create(a).Error; err != nil {
		return err
	}

	s.recorder.Record(a.AgentID, a.ContactID, models.ActivityAppointmentBooked,
		fmt.Sprintf("Appointment %q booked for %s", a.Title, a.StartTime.Format(time.RFC3339)))
	return nil
}

func (s *AppointmentService) GetByID(id, agentID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Preload("Contact").
		Where("id = ? AND agent_id = ?", id, agentID).
		First(&appt).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &appt, nil
}

// List retrieves the agent's appointments, soonest first
func (s *AppointmentService) List(agentID string, req AppointmentListRequest) ([]models.Appointment, error) {
	q := s.db.Preload("Contact").Where("agent_id = ?", agentID)

	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.ContactID != "" {
		q = q.Where("contact_id = ?", req.ContactID)
	}
	if req.From != nil {
		q = q.Where("start_time >= ?", *req.From)
	}
	if req.To != nil {
		q = q.Where("start_time <= ?", *req.To)
	}

	q = q.Order("start_time ASC")
	if req.Limit > 0 {
		q = q.Limit(req.Limit).Offset(req.Offset)
	}

	var appts []models.Appointment
	err := q.Find(&appts).Error
	return appts, err
}

// Upcoming returns the agent's next appointments from now
func (s *AppointmentService) Upcoming(agentID string, now time.Time, limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.List(agentID, AppointmentListRequest{From: &now, Limit: limit})
}

// Update saves editable fields; the appointment keeps its id
func (s *AppointmentService) Update(id, agentID string, updates *models.Appointment) (*models.Appointment, error) {
	existing, err := s.GetByID(id, agentID)
	if err != nil {
		return nil, err
	}

	if updates.Status != "" && !models.ValidAppointmentStatus(updates.Status) {
		return nil, invalidf("invalid status %q", updates.Status)
	}
	if !updates.StartTime.IsZero() && !updates.EndTime.IsZero() && !updates.EndTime.After(updates.StartTime) {
		return nil, invalidf("end_time must be after start_time")
	}

	existing.Title = updates.Title
	if !updates.StartTime.IsZero() {
		existing.StartTime = updates.StartTime
	}
	if !updates.EndTime.IsZero() {
		existing.EndTime = updates.EndTime
	}
	existing.AppointmentType = updates.AppointmentType
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	existing.Location = updates.Location
	existing.Notes = updates.Notes
	existing.RecurrenceRule = updates.RecurrenceRule
	existing.RecurrenceUntil = updates.RecurrenceUntil
	existing.ContactID = updates.ContactID

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *AppointmentService) Delete(id, agentID string) error {
	res := s.db.Where("id = ? AND agent_id = ?", id, agentID).Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
