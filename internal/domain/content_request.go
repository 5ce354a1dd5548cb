package domain

import "time"

// CreateContentRequest payload for creating a content item
type CreateContentRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Body            string           `json:"body"`
	Tags            []string         `json:"tags"`
	ContentType     ContentType      `json:"content_type"`
	Meta            MetaData         `json:"meta"`
	MediaReferences []MediaReference `json:"media_references"`
	AIInsights      *AIInsights      `json:"ai_insights"`
}

// UpdateContentRequest partial update; nil fields are left untouched
type UpdateContentRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Body            *string          `json:"body"`
	Tags            []string         `json:"tags"`
	Meta            *MetaData        `json:"meta"`
	MediaReferences []MediaReference `json:"media_references"`
}

// StatusUpdateRequest request body for a status transition
type StatusUpdateRequest struct {
	Status ContentStatus `json:"status" binding:"required"`
	Note   string        `json:"note"`
}

// SchedulePublishRequest request body for scheduling a publish
type SchedulePublishRequest struct {
	PublishAt time.Time `json:"publish_at" binding:"required"`
}

// RollbackRequest request body for a rollback; empty Fields means all fields
type RollbackRequest struct {
	Version int             `json:"version" binding:"required"`
	Fields  []RollbackField `json:"fields"`
}

// SlugUpdateRequest request body for a slug change
type SlugUpdateRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// ContentVersion one entry of the version history listing
type ContentVersion struct {
	Version       int       `json:"version"`
	UpdatedBy     string    `json:"updated_by"`
	UpdatedAt     time.Time `json:"updated_at"`
	ChangeSummary string    `json:"change_summary"`
}

// SlugValidation availability check result with alternatives when taken
type SlugValidation struct {
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions,omitempty"`
}
