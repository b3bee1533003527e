package search

import (
	"errors"
	"fmt"

	"real-estate-crm/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

const (
	contactsIndex   = "contacts"
	propertiesIndex = "properties"
)

// SearchClient indexes contacts and properties in Meilisearch. Queries
// always carry an agent_id filter so one agent never sees another's rows.
type SearchClient struct {
	client *meilisearch.Client
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &SearchClient{client: client}
}

// InitIndexes creates the indexes and configures their attributes
func (s *SearchClient) InitIndexes() error {
	for _, uid := range []string{contactsIndex, propertiesIndex} {
		_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        uid,
			PrimaryKey: "id",
		})
		// Ignore error if index already exists
		if err != nil && !isIndexExists(err) {
			return err
		}
	}

	_, err := s.client.Index(contactsIndex).UpdateSearchableAttributes(&[]string{
		"first_name",
		"last_name",
		"email",
		"phone",
		"lead_source",
	})
	if err != nil {
		return err
	}
	_, err = s.client.Index(contactsIndex).UpdateFilterableAttributes(&[]string{
		"assigned_agent_id",
		"contact_type",
		"status",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(propertiesIndex).UpdateSearchableAttributes(&[]string{
		"title",
		"address",
		"description",
	})
	if err != nil {
		return err
	}
	_, err = s.client.Index(propertiesIndex).UpdateFilterableAttributes(&[]string{
		"agent_id",
		"listing_type",
		"status",
	})
	if err != nil {
		return err
	}
	_, err = s.client.Index(propertiesIndex).UpdateSortableAttributes(&[]string{
		"price",
		"created_at",
	})
	return err
}

// isIndexExists reports whether err is the engine's duplicate-index
// error, matched on its structured code rather than the message text.
func isIndexExists(err error) bool {
	var apiErr *meilisearch.Error
	return errors.As(err, &apiErr) && apiErr.MeilisearchApiError.Code == "index_already_exists"
}

// IndexContact indexes a single contact
func (s *SearchClient) IndexContact(contact *models.Contact) error {
	_, err := s.client.Index(contactsIndex).AddDocuments([]models.Contact{*contact})
	return err
}

// IndexContacts indexes multiple contacts
func (s *SearchClient) IndexContacts(contacts []models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	_, err := s.client.Index(contactsIndex).AddDocuments(contacts)
	return err
}

// RemoveContact drops a contact from the index
func (s *SearchClient) RemoveContact(id string) error {
	_, err := s.client.Index(contactsIndex).DeleteDocument(id)
	return err
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(propertiesIndex).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(propertiesIndex).AddDocuments(properties)
	return err
}

// RemoveProperty drops a property from the index
func (s *SearchClient) RemoveProperty(id string) error {
	_, err := s.client.Index(propertiesIndex).DeleteDocument(id)
	return err
}

// SearchContacts searches the agent's contacts. The agent filter is a
// structured Meilisearch filter expression with a fixed shape; the query
// text goes through the engine's query parameter, never into the filter.
func (s *SearchClient) SearchContacts(agentID, query string, limit int64) ([]map[string]interface{}, error) {
	return s.search(contactsIndex, fmt.Sprintf("assigned_agent_id = %q", agentID), query, limit)
}

// SearchProperties searches the agent's properties
func (s *SearchClient) SearchProperties(agentID, query string, limit int64) ([]map[string]interface{}, error) {
	return s.search(propertiesIndex, fmt.Sprintf("agent_id = %q", agentID), query, limit)
}

func (s *SearchClient) search(index, filter, query string, limit int64) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = 20
	}

	res, err := s.client.Index(index).Search(query, &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: filter,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]map[string]interface{}, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if m, ok := hit.(map[string]interface{}); ok {
			hits = append(hits, m)
		}
	}
	return hits, nil
}
