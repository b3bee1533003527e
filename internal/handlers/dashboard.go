package handlers

import (
	"net/http"
	"strconv"
	"time"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the stat cards and the recent-activity feed
type DashboardHandler struct {
	dashboard  *services.DashboardService
	activities *services.ActivityService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboard:  services.NewDashboardService(db),
		activities: services.NewActivityService(db),
	}
}

// Stats returns the agent's aggregate dashboard numbers
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(auth.AgentID(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecentActivity returns the agent's latest activity entries
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activities, err := h.activities.Recent(auth.AgentID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities, "count": len(activities)})
}
