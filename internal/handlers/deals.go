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

// DealHandler handles deal CRUD and the pipeline view
type DealHandler struct {
	deals *services.DealService
}

func NewDealHandler(db *gorm.DB) *DealHandler {
	return &DealHandler{deals: services.NewDealService(db)}
}

func (h *DealHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	deals, err := h.deals.List(auth.AgentID(c), services.DealListRequest{
		Status:    models.DealStatus(c.Query("status")),
		ContactID: c.Query("contact_id"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals, "count": len(deals)})
}

func (h *DealHandler) Get(c *gin.Context) {
	deal, err := h.deals.GetByID(c.Param("id"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Create(c *gin.Context) {
	var deal models.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deal.AgentID = auth.AgentID(c)

	if err := h.deals.Create(&deal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) Update(c *gin.Context) {
	var updates models.Deal
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.deals.Update(c.Param("id"), auth.AgentID(c), &updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Delete(c *gin.Context) {
	if err := h.deals.Delete(c.Param("id"), auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Pipeline returns per-stage counts and values in fixed stage order
func (h *DealHandler) Pipeline(c *gin.Context) {
	stages, err := h.deals.Pipeline(auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pipeline": stages})
}
