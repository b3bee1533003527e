package models

import "time"

type Property struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Address string `gorm:"type:text" json:"address,omitempty"`

	ListingType ListingType    `gorm:"type:varchar(20);not null;index" json:"listing_type"`
	Status      PropertyStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	Price     *float64 `gorm:"type:decimal(14,2)" json:"price,omitempty"`
	Bedrooms  *int     `gorm:"type:int" json:"bedrooms,omitempty"`
	Bathrooms *int     `gorm:"type:int" json:"bathrooms,omitempty"`
	Area      *float64 `gorm:"type:decimal(10,2)" json:"area,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	SourceURL   string `gorm:"type:varchar(500)" json:"source_url,omitempty"`

	// Interested client, for client_interest listings
	ContactID *string `gorm:"type:varchar(36);index" json:"contact_id,omitempty"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// ListingType distinguishes the agent's own listings from properties a
// client is interested in.
type ListingType string

const (
	ListingTypeMyListing      ListingType = "my_listing"
	ListingTypeClientInterest ListingType = "client_interest"
)

type PropertyStatus string

const (
	PropertyStatusActive    PropertyStatus = "active"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusWithdrawn PropertyStatus = "withdrawn"
	PropertyStatusExpired   PropertyStatus = "expired"
)

func (Property) TableName() string {
	return "properties"
}

// ValidListingType reports whether t is a known listing type
func ValidListingType(t ListingType) bool {
	return t == ListingTypeMyListing || t == ListingTypeClientInterest
}

// ValidPropertyStatus reports whether s is a known status
func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusActive, PropertyStatusPending, PropertyStatusSold,
		PropertyStatusWithdrawn, PropertyStatusExpired:
		return true
	}
	return false
}

// PrimaryImage returns the designated primary image: the first image
// flagged is_primary, else the first image by position. Nil when the
// property has no images.
func (p *Property) PrimaryImage() *PropertyImage {
	if len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return &p.Images[0]
}
