package handlers

import (
	"log"
	"net/http"
	"strconv"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/search"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContactHandler handles contact CRUD plus the per-contact communication
// and activity logs.
type ContactHandler struct {
	contacts   *services.ContactService
	comms      *services.CommunicationService
	activities *services.ActivityService
	search     *search.SearchClient
}

// NewContactHandler creates a contact handler; searchClient may be nil
// when Meilisearch is disabled.
func NewContactHandler(db *gorm.DB, searchClient *search.SearchClient) *ContactHandler {
	return &ContactHandler{
		contacts:   services.NewContactService(db),
		comms:      services.NewCommunicationService(db),
		activities: services.NewActivityService(db),
		search:     searchClient,
	}
}

// List returns the agent's contacts with optional filters
func (h *ContactHandler) List(c *gin.Context) {
	agentID := auth.AgentID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.contacts.List(agentID, services.ContactListRequest{
		Status:      models.ContactStatus(c.Query("status")),
		ContactType: models.ContactType(c.Query("type")),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contacts.GetByID(c.Param("id"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contact.AssignedAgentID = auth.AgentID(c)

	if err := h.contacts.Create(&contact); err != nil {
		respondError(c, err)
		return
	}

	h.indexContact(&contact)
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var updates models.Contact
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.Update(c.Param("id"), auth.AgentID(c), &updates)
	if err != nil {
		respondError(c, err)
		return
	}

	h.indexContact(contact)
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.contacts.Delete(id, auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.RemoveContact(id); err != nil {
			log.Printf("Search: failed to remove contact %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// LogCommunication appends an interaction to the contact's log
func (h *ContactHandler) LogCommunication(c *gin.Context) {
	var comm models.Communication
	if err := c.ShouldBindJSON(&comm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comm.ContactID = c.Param("id")
	comm.AgentID = auth.AgentID(c)

	if err := h.comms.Log(&comm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comm)
}

// ListCommunications returns the contact's interactions, newest first
func (h *ContactHandler) ListCommunications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	comms, err := h.comms.ListByContact(c.Param("id"), auth.AgentID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"communications": comms, "count": len(comms)})
}

// ListActivities returns the contact's activity timeline
func (h *ContactHandler) ListActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	activities, err := h.activities.ListByContact(c.Param("id"), auth.AgentID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities, "count": len(activities)})
}

// indexContact mirrors a contact into the search index, best-effort
func (h *ContactHandler) indexContact(contact *models.Contact) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexContact(contact); err != nil {
		log.Printf("Search: failed to index contact %s: %v", contact.ID, err)
	}
}
