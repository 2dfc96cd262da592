package models

import "time"

type HealthRecord struct {
	BaseModel

	UserID        uint      `gorm:"not null;index" json:"userId"`
	HeartRate     int       `gorm:"not null" json:"heartRate"`
	BloodPressure int       `gorm:"not null" json:"bloodPressure"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
