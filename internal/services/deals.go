package services

import (
	"fmt"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealService wraps deal queries, always scoped by agent
type DealService struct {
	db       *gorm.DB
	recorder *ActivityRecorder
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db, recorder: NewActivityRecorder(db)}
}

// DealListRequest carries typed filter/sort parameters
type DealListRequest struct {
	Status    models.DealStatus
	ContactID string
	Search    string
	SortBy    string
	Limit     int
	Offset    int
}

// PipelineStage aggregates the deals in one pipeline stage
type PipelineStage struct {
	Status models.DealStatus `json:"status"`
	Count  int64             `json:"count"`
	Value  float64           `json:"value"`
}

func (s *DealService) Create(d *models.Deal) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = models.DealStatusProspect
	}
	if !models.ValidDealStatus(d.Status) {
		return invalidf("invalid status %q", d.Status)
	}
	if d.ContactID == "" {
		return invalidf("contact_id is required")
	}
	if d.AgentID == "" {
		return invalidf("agent_id is required")
	}

	// The linked contact must belong to the same agent
	var n int64
	if err := s.db.Model(&models.Contact{}).
		Where("id = ? AND assigned_agent_id = ?", d.ContactID, d.AgentID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := s.db.Create(d).Error; err != nil {
		return err
	}

	s.recorder.Record(d.AgentID, &d.ContactID, models.ActivityDealCreated,
		fmt.Sprintf("Deal %q created", d.Title))
	return nil
}

func (s *DealService) GetByID(id, agentID string) (*models.Deal, error) {
	var deal models.Deal
	err := s.db.Preload("Contact").
		Where("id = ? AND agent_id = ?", id, agentID).
		First(&deal).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &deal, nil
}

// List retrieves the agent's deals with contacts preloaded
func (s *DealService) List(agentID string, req DealListRequest) ([]models.Deal, error) {
	q := s.db.Preload("Contact").Where("agent_id = ?", agentID)

	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.ContactID != "" {
		q = q.Where("contact_id = ?", req.ContactID)
	}
	if req.Search != "" {
		q = q.Where(`title LIKE ? ESCAPE '\'`, likePattern(req.Search))
	}

	switch req.SortBy {
	case "price":
		q = q.Order("CASE WHEN price IS NULL THEN 1 ELSE 0 END, price DESC")
	case "expected_close":
		q = q.Order("CASE WHEN expected_close_date IS NULL THEN 1 ELSE 0 END, expected_close_date ASC")
	default:
		q = q.Order("created_at DESC")
	}

	if req.Limit > 0 {
		q = q.Limit(req.Limit).Offset(req.Offset)
	}

	var deals []models.Deal
	err := q.Find(&deals).Error
	return deals, err
}

// Update saves editable fields; the deal keeps its id and contact link
func (s *DealService) Update(id, agentID string, updates *models.Deal) (*models.Deal, error) {
	existing, err := s.GetByID(id, agentID)
	if err != nil {
		return nil, err
	}

	if updates.Status != "" && !models.ValidDealStatus(updates.Status) {
		return nil, invalidf("invalid status %q", updates.Status)
	}

	statusChanged := updates.Status != "" && updates.Status != existing.Status
	oldStatus := existing.Status

	existing.Title = updates.Title
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	existing.Price = updates.Price
	existing.CommissionRate = updates.CommissionRate
	existing.Probability = updates.Probability
	existing.ExpectedCloseDate = updates.ExpectedCloseDate
	existing.Notes = updates.Notes

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}

	if statusChanged {
		s.recorder.Record(agentID, &existing.ContactID, models.ActivityDealStatusMoved,
			fmt.Sprintf("Deal %q moved from %s to %s", existing.Title, oldStatus, existing.Status))
	}
	return existing, nil
}

func (s *DealService) Delete(id, agentID string) error {
	res := s.db.Where("id = ? AND agent_id = ?", id, agentID).Delete(&models.Deal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Pipeline returns per-stage deal counts and total value in fixed stage
// order, including empty stages.
func (s *DealService) Pipeline(agentID string) ([]PipelineStage, error) {
	type row struct {
		Status models.DealStatus
		N      int64
		Value  float64
	}
	var rows []row
	err := s.db.Model(&models.Deal{}).
		Select("status, COUNT(*) AS n, COALESCE(SUM(price), 0) AS value").
		Where("agent_id = ?", agentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[models.DealStatus]row, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = r
	}

	stages := make([]PipelineStage, 0, len(models.DealPipeline))
	for _, status := range models.DealPipeline {
		r := byStatus[status]
		stages = append(stages, PipelineStage{Status: status, Count: r.N, Value: r.Value})
	}
	return stages, nil
}
