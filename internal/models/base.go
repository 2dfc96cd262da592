package models

import "time"

// BaseModel carries the server-assigned identifier and timestamps shared by
// every persisted record. Deletes are hard deletes, so there is no DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
