package models

import "time"

type PropertyImage struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	URL        string `gorm:"type:text;not null" json:"url"`
	Caption    string `gorm:"type:varchar(255)" json:"caption,omitempty"`
	IsPrimary  bool   `gorm:"not null;default:false" json:"is_primary"`
	Position   int    `gorm:"type:int;not null;default:0" json:"position"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}
