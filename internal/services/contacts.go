package services

import (
	"fmt"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService wraps contact queries, always scoped by agent
type ContactService struct {
	db       *gorm.DB
	recorder *ActivityRecorder
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db, recorder: NewActivityRecorder(db)}
}

// ContactListRequest carries typed filter/sort/search parameters. Search
// text is bound as an escaped LIKE parameter, never interpolated into the
// filter expression.
type ContactListRequest struct {
	Status      models.ContactStatus
	ContactType models.ContactType
	Search      string
	SortBy      string
	Limit       int
	Offset      int
}

func (s *ContactService) Create(c *models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.ContactStatusNew
	}
	if !models.ValidContactType(c.ContactType) {
		return invalidf("invalid contact_type %q", c.ContactType)
	}
	if !models.ValidContactStatus(c.Status) {
		return invalidf("invalid status %q", c.Status)
	}
	if c.AssignedAgentID == "" {
		return invalidf("assigned_agent_id is required")
	}

	if err := s.db.Create(c).Error; err != nil {
		return err
	}

	s.recorder.Record(c.AssignedAgentID, &c.ID, models.ActivityContactCreated,
		fmt.Sprintf("Contact %s created", c.FullName()))
	return nil
}

func (s *ContactService) GetByID(id, agentID string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Where("id = ? AND assigned_agent_id = ?", id, agentID).First(&contact).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &contact, nil
}

// List retrieves the agent's contacts with optional filters
func (s *ContactService) List(agentID string, req ContactListRequest) ([]models.Contact, error) {
	q := s.db.Where("assigned_agent_id = ?", agentID)

	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.ContactType != "" {
		q = q.Where("contact_type = ?", req.ContactType)
	}
	if req.Search != "" {
		pattern := likePattern(req.Search)
		q = q.Where(`first_name LIKE ? ESCAPE '\' OR last_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern)
	}

	switch req.SortBy {
	case "name":
		q = q.Order("last_name ASC, first_name ASC")
	case "lead_score":
		q = q.Order("CASE WHEN lead_score IS NULL THEN 1 ELSE 0 END, lead_score DESC")
	case "updated_at":
		q = q.Order("updated_at DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if req.Limit > 0 {
		q = q.Limit(req.Limit).Offset(req.Offset)
	}

	var contacts []models.Contact
	err := q.Find(&contacts).Error
	return contacts, err
}

// ByStatus retrieves the agent's contacts in one pipeline stage
func (s *ContactService) ByStatus(status models.ContactStatus, agentID string) ([]models.Contact, error) {
	return s.List(agentID, ContactListRequest{Status: status})
}

// Update saves editable fields; the row must belong to the agent. A status
// change is recorded on the activity timeline.
func (s *ContactService) Update(id, agentID string, updates *models.Contact) (*models.Contact, error) {
	existing, err := s.GetByID(id, agentID)
	if err != nil {
		return nil, err
	}

	if updates.ContactType != "" && !models.ValidContactType(updates.ContactType) {
		return nil, invalidf("invalid contact_type %q", updates.ContactType)
	}
	if updates.Status != "" && !models.ValidContactStatus(updates.Status) {
		return nil, invalidf("invalid status %q", updates.Status)
	}

	statusChanged := updates.Status != "" && updates.Status != existing.Status
	oldStatus := existing.Status

	existing.FirstName = updates.FirstName
	existing.LastName = updates.LastName
	existing.Email = updates.Email
	existing.Phone = updates.Phone
	if updates.ContactType != "" {
		existing.ContactType = updates.ContactType
	}
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	existing.BudgetMin = updates.BudgetMin
	existing.BudgetMax = updates.BudgetMax
	existing.LeadSource = updates.LeadSource
	existing.LeadScore = updates.LeadScore
	existing.Notes = updates.Notes

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}

	if statusChanged {
		s.recorder.Record(agentID, &existing.ID, models.ActivityContactStatusMoved,
			fmt.Sprintf("Contact %s moved from %s to %s", existing.FullName(), oldStatus, existing.Status))
	}
	return existing, nil
}

// Delete removes a contact owned by the agent
func (s *ContactService) Delete(id, agentID string) error {
	res := s.db.Where("id = ? AND assigned_agent_id = ?", id, agentID).Delete(&models.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns contact counts per pipeline stage for the agent
func (s *ContactService) CountByStatus(agentID string) (map[models.ContactStatus]int64, error) {
	type row struct {
		Status models.ContactStatus
		N      int64
	}
	var rows []row
	err := s.db.Model(&models.Contact{}).
		Select("status, COUNT(*) AS n").
		Where("assigned_agent_id = ?", agentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ContactStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
