package services

import (
	"testing"
	"time"

	"real-estate-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreateAssignsSortOrder(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	first := &models.Task{Title: "Call Jane", AgentID: agentID}
	second := &models.Task{Title: "Prepare listing", AgentID: agentID}
	require.NoError(t, svc.Create(first))
	require.NoError(t, svc.Create(second))

	assert.Equal(t, 1, first.SortOrder)
	assert.Equal(t, 2, second.SortOrder)
	assert.Equal(t, models.TaskStatusPending, first.Status)
	assert.Equal(t, models.TaskPriorityMedium, first.Priority)
}

func TestTaskUpdateKeepsID(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	task := &models.Task{Title: "Follow up", AgentID: agentID}
	require.NoError(t, svc.Create(task))

	updated, err := svc.Update(task.ID, agentID, &models.Task{
		Title:    "Follow up again",
		Status:   models.TaskStatusInProgress,
		Priority: models.TaskPriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "Follow up again", updated.Title)

	// No duplicate row appears after an update
	var n int64
	require.NoError(t, db.Model(&models.Task{}).Where("agent_id = ?", agentID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestTaskCompleteSetsTimestampAndActivity(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	task := &models.Task{Title: "Send contract", AgentID: agentID}
	require.NoError(t, svc.Create(task))

	updated, err := svc.Update(task.ID, agentID, &models.Task{
		Title:  "Send contract",
		Status: models.TaskStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	var activities []models.Activity
	require.NoError(t, db.Where("activity_type = ?", models.ActivityTaskCompleted).Find(&activities).Error)
	require.Len(t, activities, 1)
}

func TestTaskColumns(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	require.NoError(t, svc.Create(&models.Task{Title: "A", AgentID: agentID}))
	require.NoError(t, svc.Create(&models.Task{Title: "B", Status: models.TaskStatusInProgress, AgentID: agentID}))

	columns, err := svc.Columns(agentID)
	require.NoError(t, err)

	// Every board column exists, even when empty
	require.Len(t, columns, len(models.TaskColumns))
	assert.Len(t, columns[models.TaskStatusPending], 1)
	assert.Len(t, columns[models.TaskStatusInProgress], 1)
	assert.Empty(t, columns[models.TaskStatusCompleted])
}

func TestTaskReorder(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	a := &models.Task{Title: "A", AgentID: agentID}
	b := &models.Task{Title: "B", AgentID: agentID}
	require.NoError(t, svc.Create(a))
	require.NoError(t, svc.Create(b))

	require.NoError(t, svc.Reorder(agentID, []TaskReorderItem{
		{ID: b.ID, SortOrder: 1},
		{ID: a.ID, Status: models.TaskStatusInProgress, SortOrder: 1},
	}))

	tasks, err := svc.List(agentID, TaskListRequest{Status: models.TaskStatusPending})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	moved, err := svc.GetByID(a.ID, agentID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, moved.Status)
}

func TestTaskReorderUnknownIDRollsBack(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	task := &models.Task{Title: "A", AgentID: agentID}
	require.NoError(t, svc.Create(task))

	err := svc.Reorder(agentID, []TaskReorderItem{
		{ID: task.ID, SortOrder: 9},
		{ID: "missing", SortOrder: 1},
	})
	require.ErrorIs(t, err, ErrNotFound)

	// The whole batch rolls back
	got, err := svc.GetByID(task.ID, agentID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SortOrder)
}

func TestTaskCalendarEventLink(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	task := &models.Task{Title: "Viewing", AgentID: agentID}
	require.NoError(t, svc.Create(task))

	require.NoError(t, svc.SetCalendarEventID(task.ID, agentID, "evt-123"))

	found, err := svc.FindByCalendarEventID("evt-123", agentID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = svc.FindByCalendarEventID("evt-404", agentID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskSearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	require.NoError(t, svc.Create(&models.Task{Title: "Collect 100% deposit", AgentID: agentID}))
	require.NoError(t, svc.Create(&models.Task{Title: "Collect keys", AgentID: agentID}))

	found, err := svc.List(agentID, TaskListRequest{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Collect 100% deposit", found[0].Title)
}

func TestTaskDueToday(t *testing.T) {
	db := newTestDB(t)
	agentID := newTestAgent(t, db)
	svc := NewTaskService(db)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	today := now.Add(2 * time.Hour)
	tomorrow := now.Add(26 * time.Hour)

	require.NoError(t, svc.Create(&models.Task{Title: "Due", DueDate: &today, AgentID: agentID}))
	require.NoError(t, svc.Create(&models.Task{Title: "Later", DueDate: &tomorrow, AgentID: agentID}))
	require.NoError(t, svc.Create(&models.Task{Title: "No date", AgentID: agentID}))

	n, err := svc.DueToday(agentID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
