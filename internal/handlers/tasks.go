package handlers

import (
	"net/http"
	"strconv"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskHandler handles task CRUD, the board view and reordering
type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{tasks: services.NewTaskService(db)}
}

func (h *TaskHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tasks, err := h.tasks.List(auth.AgentID(c), services.TaskListRequest{
		Status:    models.TaskStatus(c.Query("status")),
		Priority:  models.TaskPriority(c.Query("priority")),
		ContactID: c.Query("contact_id"),
		DealID:    c.Query("deal_id"),
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// Columns returns the board grouped by status in fixed column order
func (h *TaskHandler) Columns(c *gin.Context) {
	columns, err := h.tasks.Columns(auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.GetByID(c.Param("id"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task.AgentID = auth.AgentID(c)

	if err := h.tasks.Create(&task); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var updates models.Task
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Param("id"), auth.AgentID(c), &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Param("id"), auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderRequest struct {
	Items []services.TaskReorderItem `json:"items" binding:"required"`
}

// Reorder persists a drag-and-drop batch of column/position changes
func (h *TaskHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Reorder(auth.AgentID(c), req.Items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
