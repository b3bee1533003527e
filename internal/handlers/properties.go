package handlers

import (
	"log"
	"net/http"
	"strconv"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/importer"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/search"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PropertyHandler handles property CRUD, images and listing import
type PropertyHandler struct {
	properties *services.PropertyService
	importer   *importer.ListingImporter
	search     *search.SearchClient
}

// NewPropertyHandler creates a property handler; importer and
// searchClient may be nil when their features are disabled.
func NewPropertyHandler(db *gorm.DB, li *importer.ListingImporter, searchClient *search.SearchClient) *PropertyHandler {
	return &PropertyHandler{
		properties: services.NewPropertyService(db),
		importer:   li,
		search:     searchClient,
	}
}

func (h *PropertyHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	properties, err := h.properties.List(auth.AgentID(c), services.PropertyListRequest{
		ListingType: models.ListingType(c.Query("listing_type")),
		Status:      models.PropertyStatus(c.Query("status")),
		ContactID:   c.Query("contact_id"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties, "count": len(properties)})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.properties.GetByID(c.Param("id"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property.AgentID = auth.AgentID(c)

	if err := h.properties.Create(&property); err != nil {
		respondError(c, err)
		return
	}

	h.indexProperty(&property)
	c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var updates models.Property
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.properties.Update(c.Param("id"), auth.AgentID(c), &updates)
	if err != nil {
		respondError(c, err)
		return
	}

	h.indexProperty(property)
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.properties.Delete(id, auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperty(id); err != nil {
			log.Printf("Search: failed to remove property %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddImage appends an image row to the property
func (h *PropertyHandler) AddImage(c *gin.Context) {
	var img models.PropertyImage
	if err := c.ShouldBindJSON(&img); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.properties.AddImage(c.Param("id"), auth.AgentID(c), &img); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// SetPrimaryImage flags one image as the property's primary
func (h *PropertyHandler) SetPrimaryImage(c *gin.Context) {
	err := h.properties.SetPrimaryImage(c.Param("id"), c.Param("imageId"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteImage removes one image row
func (h *PropertyHandler) DeleteImage(c *gin.Context) {
	err := h.properties.DeleteImage(c.Param("id"), c.Param("imageId"), auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type importRequest struct {
	URL         string             `json:"url" binding:"required,url"`
	ListingType models.ListingType `json:"listing_type"`
	ContactID   *string            `json:"contact_id"`
}

// Import fetches a public listing page and saves a property draft
func (h *PropertyHandler) Import(c *gin.Context) {
	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing import is disabled"})
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.importer.FetchListing(req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	property.AgentID = auth.AgentID(c)
	property.ContactID = req.ContactID
	property.ListingType = req.ListingType
	if property.ListingType == "" {
		property.ListingType = models.ListingTypeClientInterest
	}

	if err := h.properties.Create(property); err != nil {
		respondError(c, err)
		return
	}

	h.indexProperty(property)
	c.JSON(http.StatusCreated, property)
}

// indexProperty mirrors a property into the search index, best-effort
func (h *PropertyHandler) indexProperty(property *models.Property) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexProperty(property); err != nil {
		log.Printf("Search: failed to index property %s: %v", property.ID, err)
	}
}
