package models

import "time"

type Task struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Priority TaskPriority `gorm:"type:varchar(10);not null;default:'medium';index" json:"priority"`
	Status   TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TaskType string       `gorm:"type:varchar(50)" json:"task_type,omitempty"`

	DueDate *time.Time `gorm:"type:datetime;index" json:"due_date,omitempty"`

	ContactID *string `gorm:"type:varchar(36);index" json:"contact_id,omitempty"`
	DealID    *string `gorm:"type:varchar(36);index" json:"deal_id,omitempty"`

	// Provider-side event id once the task is pushed to or imported from
	// Google Calendar. Import dedup keys on this column alone.
	GoogleCalendarEventID string `gorm:"type:varchar(255);index" json:"google_calendar_event_id,omitempty"`

	// Manual position within a status column
	SortOrder int `gorm:"type:int;not null;default:0" json:"sort_order"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	CompletedAt *time.Time `gorm:"type:datetime" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskColumns is the fixed column order for the task board
var TaskColumns = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

func (Task) TableName() string {
	return "tasks"
}

// ValidTaskPriority reports whether p is a known priority
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// ValidTaskStatus reports whether s is a known status
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the task still needs work
func (t *Task) IsOpen() bool {
	return t.Status == TaskStatusPending || t.Status == TaskStatusInProgress
}
