package models

import "time"

type Deal struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ContactID string `gorm:"type:varchar(36);not null;index" json:"contact_id"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`

	Status DealStatus `gorm:"type:varchar(20);not null;default:'prospect';index" json:"status"`

	Price             *float64   `gorm:"type:decimal(14,2)" json:"price,omitempty"`
	CommissionRate    *float64   `gorm:"type:decimal(5,2)" json:"commission_rate,omitempty"`
	Probability       *int       `gorm:"type:int" json:"probability,omitempty"`
	ExpectedCloseDate *time.Time `gorm:"type:datetime" json:"expected_close_date,omitempty"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`

	AgentID string `gorm:"type:varchar(36);not null;index" json:"agent_id"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// DealStatus is the pipeline stage of a deal
type DealStatus string

const (
	DealStatusProspect    DealStatus = "prospect"
	DealStatusQualified   DealStatus = "qualified"
	DealStatusProposal    DealStatus = "proposal"
	DealStatusNegotiation DealStatus = "negotiation"
	DealStatusClosedWon   DealStatus = "closed_won"
	DealStatusClosedLost  DealStatus = "closed_lost"
)

// DealPipeline is the fixed stage order used for pipeline views
var DealPipeline = []DealStatus{
	DealStatusProspect,
	DealStatusQualified,
	DealStatusProposal,
	DealStatusNegotiation,
	DealStatusClosedWon,
	DealStatusClosedLost,
}

func (Deal) TableName() string {
	return "deals"
}

// ValidDealStatus reports whether s is one of the known pipeline stages
func ValidDealStatus(s DealStatus) bool {
	for _, stage := range DealPipeline {
		if s == stage {
			return true
		}
	}
	return false
}

// IsClosed reports whether the deal reached a terminal stage
func (d *Deal) IsClosed() bool {
	return d.Status == DealStatusClosedWon || d.Status == DealStatusClosedLost
}

// ExpectedCommission computes price * commission_rate / 100, zero when
// either value is missing.
func (d *Deal) ExpectedCommission() float64 {
	if d.Price == nil || d.CommissionRate == nil {
		return 0
	}
	return *d.Price * *d.CommissionRate / 100
}
