package handlers

import (
	"net/http"
	"strconv"
	"time"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment CRUD and calendar-range queries
type AppointmentHandler struct {
	appointments *services.AppointmentService
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{appointments: services.NewAppointmentService(db)}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	req := services.AppointmentListRequest{
		Status:    models.AppointmentStatus(c.Query("status")),
		ContactID: c.Query("contact_id"),
		Limit:     limit,
		Offset:    offset,
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		req.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		req.To = &to
	}

	appts, err := h.appointments.List(auth.AgentID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "count": len(appts)})
}

// Upcoming returns the agent's next appointments from now
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	appts, err := h.appointments.Upcoming(auth.AgentID(c), time.Now(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "count": len(appts)})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.appointments.GetByID(c.Param("id"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var appt models.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appt.AgentID = auth.AgentID(c)

	if err := h.appointments.Create(&appt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var updates models.Appointment
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.appointments.Update(c.Param("id"), auth.AgentID(c), &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.appointments.Delete(c.Param("id"), auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
