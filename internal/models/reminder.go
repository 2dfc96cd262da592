package models

const DefaultReminderType = "Other"

type Reminder struct {
	BaseModel

	UserID      uint   `gorm:"not null;index" json:"userId"`
	Title       string `gorm:"not null" json:"title"`
	Time        string `json:"time"`
	Type        string `gorm:"not null;default:Other" json:"type"`
	IsCompleted bool   `gorm:"not null;default:false" json:"isCompleted"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
