package handlers

import (
	"net/http"
	"strconv"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves full-text search over the Meilisearch indexes
type SearchHandler struct {
	search *search.SearchClient
}

func NewSearchHandler(searchClient *search.SearchClient) *SearchHandler {
	return &SearchHandler{search: searchClient}
}

// Contacts searches the agent's contacts
func (h *SearchHandler) Contacts(c *gin.Context) {
	h.run(c, h.search.SearchContacts)
}

// Properties searches the agent's properties
func (h *SearchHandler) Properties(c *gin.Context) {
	h.run(c, h.search.SearchProperties)
}

func (h *SearchHandler) run(c *gin.Context, fn func(agentID, query string, limit int64) ([]map[string]interface{}, error)) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is disabled"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	hits, err := fn(auth.AgentID(c), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits, "count": len(hits)})
}
