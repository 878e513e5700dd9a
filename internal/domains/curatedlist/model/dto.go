package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// CreateCuratedListRequest POST /api/curated-lists
type CreateCuratedListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateCuratedListRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateCuratedListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Description,
			validation.RuneLength(0, MaxDescriptionLength),
		),
	)
}

// UpdateCuratedListRequest PUT /api/curated-lists/:curatedListId
// Slug luôn được tính lại từ name mới
type UpdateCuratedListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *UpdateCuratedListRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r UpdateCuratedListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Description,
			validation.RuneLength(0, MaxDescriptionLength),
		),
	)
}
