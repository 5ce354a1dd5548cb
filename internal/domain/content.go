package domain

import "time"

// ContentType classifies a content item
type ContentType string

const (
	ContentTypeArticle  ContentType = "ARTICLE"
	ContentTypeBlogPost ContentType = "BLOG_POST"
	ContentTypePage     ContentType = "PAGE"
	ContentTypeNews     ContentType = "NEWS"
)

// UserDetails actor reference stored on content and audit records
type UserDetails struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// MediaReference link to a media asset owned by the media service
type MediaReference struct {
	MediaID string `json:"media_id"`
	Type    string `json:"type,omitempty"`
	URL     string `json:"url,omitempty"`
}

// MetaData SEO metadata payload
type MetaData struct {
	SEOTitle       string   `json:"seo_title,omitempty"`
	SEODescription string   `json:"seo_description,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

// AIInsights optional AI-generated annotations attached at creation time
type AIInsights struct {
	Summary          string   `json:"summary,omitempty"`
	SuggestedTags    []string `json:"suggested_tags,omitempty"`
	ReadabilityScore float64  `json:"readability_score,omitempty"`
}

// Content represents a content item (article/page) owned by an organization.
// Version is monotonically increasing per ID: it starts at 1 and every
// persisted content mutation (edit, slug change, rollback) increments it by
// exactly one. Status transitions are audited separately and do not bump it.
type Content struct {
	ID    string `gorm:"column:id;primaryKey;size:36" json:"id"`
	OrgID string `gorm:"column:org_id;size:36;index" json:"org_id"`

	Title           string           `gorm:"column:title;size:500" json:"title"`
	Slug            string           `gorm:"column:slug;size:255;index" json:"slug"`
	Description     string           `gorm:"column:description;type:text" json:"description"`
	Body            string           `gorm:"column:body;type:longtext" json:"body"`
	Tags            []string         `gorm:"column:tags;type:json;serializer:json" json:"tags"`
	ContentType     ContentType      `gorm:"column:content_type;size:32" json:"content_type"`
	Meta            MetaData         `gorm:"column:meta;type:json;serializer:json" json:"meta"`
	MediaReferences []MediaReference `gorm:"column:media_references;type:json;serializer:json" json:"media_references"`
	AIInsights      *AIInsights      `gorm:"column:ai_insights;type:json;serializer:json" json:"ai_insights,omitempty"`

	Status  ContentStatus `gorm:"column:status;size:20;index" json:"status"`
	Version int           `gorm:"column:version" json:"version"`

	Author        UserDetails  `gorm:"column:author;type:json;serializer:json" json:"author"`
	LastUpdatedBy UserDetails  `gorm:"column:last_updated_by;type:json;serializer:json" json:"last_updated_by"`
	ReviewedBy    *UserDetails `gorm:"column:reviewed_by;type:json;serializer:json" json:"reviewed_by,omitempty"`

	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
	PublishedAt        *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	ScheduledPublishAt *time.Time `gorm:"column:scheduled_publish_at;index" json:"scheduled_publish_at,omitempty"`
	DeletedAt          *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Content) TableName() string {
	return "content"
}

// MediaIDs collects the media IDs referenced by the item
func (c *Content) MediaIDs() []string {
	ids := make([]string, 0, len(c.MediaReferences))
	for _, ref := range c.MediaReferences {
		ids = append(ids, ref.MediaID)
	}
	return ids
}
