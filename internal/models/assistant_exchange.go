package models

import "gorm.io/datatypes"

// AssistantExchange is one prompt/reply round trip through the assistant
// proxy, kept so the frontend can show conversation history per user. Raw
// holds the assistant service's verbatim JSON response.
type AssistantExchange struct {
	BaseModel

	UserID uint           `gorm:"not null;index" json:"userId"`
	Prompt string         `gorm:"not null" json:"prompt"`
	Reply  string         `json:"reply"`
	Raw    datatypes.JSON `gorm:"type:jsonb" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
