package domain

import "time"

// ContentHistory is an immutable snapshot of a content item taken before a
// mutation. ContentID and Version are denormalized from the snapshot so the
// history table can be queried without unpacking the JSON payload; Version is
// the version the content held at snapshot time, not a separate sequence.
type ContentHistory struct {
	ID        string      `gorm:"column:id;primaryKey;size:36" json:"id"`
	ContentID string      `gorm:"column:content_id;size:36;index" json:"content_id"`
	Version   int         `gorm:"column:version" json:"version"`
	Snapshot  Content     `gorm:"column:snapshot;type:json;serializer:json" json:"snapshot"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	CreatedBy UserDetails `gorm:"column:created_by;type:json;serializer:json" json:"created_by"`
	// ChangeReason free text describing the mutation that triggered the
	// snapshot, e.g. "Updated Title, Body" or "Before rollback to version 3"
	ChangeReason string `gorm:"column:change_reason;size:500" json:"change_reason"`
}

func (ContentHistory) TableName() string {
	return "content_history"
}
