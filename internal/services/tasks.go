package services

import (
	"fmt"
	"time"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService wraps task queries, always scoped by agent
type TaskService struct {
	db       *gorm.DB
	recorder *ActivityRecorder
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, recorder: NewActivityRecorder(db)}
}

// TaskListRequest carries typed filter/sort parameters
type TaskListRequest struct {
	Status    models.TaskStatus
	Priority  models.TaskPriority
	ContactID string
	DealID    string
	DueBefore *time.Time
	Search    string
	Limit     int
	Offset    int
}

// TaskReorderItem is one entry of a column reorder batch
type TaskReorderItem struct {
	ID        string            `json:"id"`
	Status    models.TaskStatus `json:"status"`
	SortOrder int               `json:"sort_order"`
}

func (s *TaskService) Create(t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskStatus(t.Status) {
		return invalidf("invalid status %q", t.Status)
	}
	if !models.ValidTaskPriority(t.Priority) {
		return invalidf("invalid priority %q", t.Priority)
	}
	if t.Title == "" {
		return invalidf("title is required")
	}
	if t.AgentID == "" {
		return invalidf("agent_id is required")
	}

	// New tasks land at the bottom of their column
	if t.SortOrder == 0 {
		var maxOrder int
		s.db.Model(&models.Task{}).
			Where("agent_id = ? AND status = ?", t.AgentID, t.Status).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&maxOrder)
		t.SortOrder = maxOrder + 1
	}

	return s.db.Create(t).Error
}

func (s *TaskService) GetByID(id, agentID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND agent_id = ?", id, agentID).First(&task).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &task, nil
}

// List retrieves the agent's tasks, column-ordered
func (s *TaskService) List(agentID string, req TaskListRequest) ([]models.Task, error) {
	q := s.db.Where("agent_id = ?", agentID)

	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		q = q.Where("priority = ?", req.Priority)
	}
	if req.ContactID != "" {
		q = q.Where("contact_id = ?", req.ContactID)
	}
	if req.DealID != "" {
		q = q.Where("deal_id = ?", req.DealID)
	}
	if req.DueBefore != nil {
		q = q.Where("due_date IS NOT NULL AND due_date <= ?", *req.DueBefore)
	}
	if req.Search != "" {
		pattern := likePattern(req.Search)
		q = q.Where(`title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	q = q.Order("sort_order ASC, created_at ASC")
	if req.Limit > 0 {
		q = q.Limit(req.Limit).Offset(req.Offset)
	}

	var tasks []models.Task
	err := q.Find(&tasks).Error
	return tasks, err
}

// Columns returns the agent's open board grouped by status in fixed
// column order.
func (s *TaskService) Columns(agentID string) (map[models.TaskStatus][]models.Task, error) {
	tasks, err := s.List(agentID, TaskListRequest{})
	if err != nil {
		return nil, err
	}

	columns := make(map[models.TaskStatus][]models.Task, len(models.TaskColumns))
	for _, status := range models.TaskColumns {
		columns[status] = []models.Task{}
	}
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}
	return columns, nil
}

// Update saves editable fields. The task always keeps its existing id;
// there is no upsert path that could duplicate a row.
func (s *TaskService) Update(id, agentID string, updates *models.Task) (*models.Task, error) {
	existing, err := s.GetByID(id, agentID)
	if err != nil {
		return nil, err
	}

	if updates.Status != "" && !models.ValidTaskStatus(updates.Status) {
		return nil, invalidf("invalid status %q", updates.Status)
	}
	if updates.Priority != "" && !models.ValidTaskPriority(updates.Priority) {
		return nil, invalidf("invalid priority %q", updates.Priority)
	}

	completing := updates.Status == models.TaskStatusCompleted && existing.Status != models.TaskStatusCompleted

	existing.Title = updates.Title
	existing.Description = updates.Description
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	if updates.Priority != "" {
		existing.Priority = updates.Priority
	}
	existing.TaskType = updates.TaskType
	existing.DueDate = updates.DueDate
	existing.ContactID = updates.ContactID
	existing.DealID = updates.DealID

	if completing {
		now := time.Now()
		existing.CompletedAt = &now
	}

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}

	if completing {
		s.recorder.Record(agentID, existing.ContactID, models.ActivityTaskCompleted,
			fmt.Sprintf("Task %q completed", existing.Title))
	}
	return existing, nil
}

// Reorder persists a drag-and-drop batch: each item's column and position
// in one transaction.
func (s *TaskService) Reorder(agentID string, items []TaskReorderItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.Status != "" && !models.ValidTaskStatus(item.Status) {
				return invalidf("invalid status %q", item.Status)
			}

			updates := map[string]interface{}{"sort_order": item.SortOrder}
			if item.Status != "" {
				updates["status"] = item.Status
			}

			res := tx.Model(&models.Task{}).
				Where("id = ? AND agent_id = ?", item.ID, agentID).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

func (s *TaskService) Delete(id, agentID string) error {
	res := s.db.Where("id = ? AND agent_id = ?", id, agentID).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByCalendarEventID looks up the task linked to a provider event id.
// Used by calendar import dedup.
func (s *TaskService) FindByCalendarEventID(eventID, agentID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("google_calendar_event_id = ? AND agent_id = ?", eventID, agentID).
		First(&task).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &task, nil
}

// SetCalendarEventID writes the provider event id back onto a task after
// a successful event create.
func (s *TaskService) SetCalendarEventID(id, agentID, eventID string) error {
	res := s.db.Model(&models.Task{}).
		Where("id = ? AND agent_id = ?", id, agentID).
		Update("google_calendar_event_id", eventID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DueToday counts open tasks due before end of the given day
func (s *TaskService) DueToday(agentID string, now time.Time) (int64, error) {
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	var n int64
	err := s.db.Model(&models.Task{}).
		Where("agent_id = ? AND status IN ? AND due_date IS NOT NULL AND due_date <= ?",
			agentID, []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress}, dayEnd).
		Count(&n).Error
	return n, err
}
