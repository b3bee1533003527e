package services

import (
	"fmt"

	"real-estate-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyService wraps property and property-image queries, always
// scoped by agent
type PropertyService struct {
	db       *gorm.DB
	recorder *ActivityRecorder
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db, recorder: NewActivityRecorder(db)}
}

// PropertyListRequest carries typed filter/sort parameters
type PropertyListRequest struct {
	ListingType models.ListingType
	Status      models.PropertyStatus
	ContactID   string
	Search      string
	SortBy      string
	Limit       int
	Offset      int
}

func (s *PropertyService) Create(p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PropertyStatusActive
	}
	if !models.ValidListingType(p.ListingType) {
		return invalidf("invalid listing_type %q", p.ListingType)
	}
	if !models.ValidPropertyStatus(p.Status) {
		return invalidf("invalid status %q", p.Status)
	}
	if p.Title == "" {
		return invalidf("title is required")
	}
	if p.AgentID == "" {
		return invalidf("agent_id is required")
	}

	if err := s.db.Create(p).Error; err != nil {
		return err
	}

	if p.ContactID != nil {
		s.recorder.Record(p.AgentID, p.ContactID, models.ActivityPropertyLinked,
			fmt.Sprintf("Property %q linked", p.Title))
	}
	return nil
}

func (s *PropertyService) GetByID(id, agentID string) (*models.Property, error) {
	var property models.Property
	err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND agent_id = ?", id, agentID).First(&property).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &property, nil
}

// List retrieves the agent's properties with images preloaded
func (s *PropertyService) List(agentID string, req PropertyListRequest) ([]models.Property, error) {
	q := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("agent_id = ?", agentID)

	if req.ListingType != "" {
		q = q.Where("listing_type = ?", req.ListingType)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.ContactID != "" {
		q = q.Where("contact_id = ?", req.ContactID)
	}
	if req.Search != "" {
		pattern := likePattern(req.Search)
		q = q.Where(`title LIKE ? ESCAPE '\' OR address LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	switch req.SortBy {
	case "price_asc":
		q = q.Order("CASE WHEN price IS NULL THEN 1 ELSE 0 END, price ASC")
	case "price_desc":
		q = q.Order("CASE WHEN price IS NULL THEN 1 ELSE 0 END, price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if req.Limit > 0 {
		q = q.Limit(req.Limit).Offset(req.Offset)
	}

	var properties []models.Property
	err := q.Find(&properties).Error
	return properties, err
}

// Update saves editable fields; the property keeps its id
func (s *PropertyService) Update(id, agentID string, updates *models.Property) (*models.Property, error) {
	existing, err := s.GetByID(id, agentID)
	if err != nil {
		return nil, err
	}

	if updates.ListingType != "" && !models.ValidListingType(updates.ListingType) {
		return nil, invalidf("invalid listing_type %q", updates.ListingType)
	}
	if updates.Status != "" && !models.ValidPropertyStatus(updates.Status) {
		return nil, invalidf("invalid status %q", updates.Status)
	}

	existing.Title = updates.Title
	existing.Address = updates.Address
	if updates.ListingType != "" {
		existing.ListingType = updates.ListingType
	}
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	existing.Price = updates.Price
	existing.Bedrooms = updates.Bedrooms
	existing.Bathrooms = updates.Bathrooms
	existing.Area = updates.Area
	existing.Description = updates.Description
	existing.ContactID = updates.ContactID

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a property and its image rows
func (s *PropertyService) Delete(id, agentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND agent_id = ?", id, agentID).Delete(&models.Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error
	})
}

// AddImage appends an image row to a property owned by the agent
func (s *PropertyService) AddImage(propertyID, agentID string, img *models.PropertyImage) error {
	if _, err := s.GetByID(propertyID, agentID); err != nil {
		return err
	}
	if img.URL == "" {
		return invalidf("url is required")
	}

	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	img.PropertyID = propertyID

	if img.Position == 0 {
		var maxPos int
		s.db.Model(&models.PropertyImage{}).
			Where("property_id = ?", propertyID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos)
		img.Position = maxPos + 1
	}

	return s.db.Create(img).Error
}

// SetPrimaryImage flags one image as primary and clears the flag on the
// property's other images.
func (s *PropertyService) SetPrimaryImage(propertyID, imageID, agentID string) error {
	if _, err := s.GetByID(propertyID, agentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ?", propertyID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.PropertyImage{}).
			Where("id = ? AND property_id = ?", imageID, propertyID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteImage removes one image row from a property owned by the agent
func (s *PropertyService) DeleteImage(propertyID, imageID, agentID string) error {
	if _, err := s.GetByID(propertyID, agentID); err != nil {
		return err
	}

	res := s.db.Where("id = ? AND property_id = ?", imageID, propertyID).
		Delete(&models.PropertyImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
