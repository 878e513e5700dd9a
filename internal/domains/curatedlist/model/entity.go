package model

import (
	"time"

	"github.com/google/uuid"
)

// CuratedList là list do người dùng đặt tên. Slug suy ra từ name, không unique
type CuratedList struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
