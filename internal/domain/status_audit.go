package domain

import "time"

// ContentStatusAudit append-only audit record for a status change
type ContentStatusAudit struct {
	ID        string        `gorm:"column:id;primaryKey;size:36" json:"id"`
	ContentID string        `gorm:"column:content_id;size:36;index" json:"content_id"`
	OldStatus ContentStatus `gorm:"column:old_status;size:20" json:"old_status"`
	NewStatus ContentStatus `gorm:"column:new_status;size:20" json:"new_status"`
	ChangedBy UserDetails   `gorm:"column:changed_by;type:json;serializer:json" json:"changed_by"`
	ChangedAt time.Time     `gorm:"column:changed_at;autoCreateTime:false" json:"changed_at"`
	Note      string        `gorm:"column:note;size:500" json:"note,omitempty"`
}

func (ContentStatusAudit) TableName() string {
	return "content_status_audit"
}
