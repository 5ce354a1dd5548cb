package domain

// RollbackField selects which part of a snapshot is copied back onto the
// current item during a rollback.
type RollbackField string

const (
	RollbackFieldTitle       RollbackField = "TITLE"
	RollbackFieldDescription RollbackField = "DESCRIPTION"
	RollbackFieldBody        RollbackField = "BODY"
	RollbackFieldTags        RollbackField = "TAGS"
	RollbackFieldMedia       RollbackField = "MEDIA"
	RollbackFieldContentType RollbackField = "CONTENT_TYPE"
	RollbackFieldMeta        RollbackField = "META"
	RollbackFieldStatus      RollbackField = "STATUS"
)

// AllRollbackFields returns the complete field set, used when a rollback
// request does not narrow the selection.
func AllRollbackFields() []RollbackField {
	return []RollbackField{
		RollbackFieldTitle,
		RollbackFieldDescription,
		RollbackFieldBody,
		RollbackFieldTags,
		RollbackFieldMedia,
		RollbackFieldContentType,
		RollbackFieldMeta,
		RollbackFieldStatus,
	}
}

// IsValid reports whether f is a known rollback field tag
func (f RollbackField) IsValid() bool {
	switch f {
	case RollbackFieldTitle, RollbackFieldDescription, RollbackFieldBody,
		RollbackFieldTags, RollbackFieldMedia, RollbackFieldContentType,
		RollbackFieldMeta, RollbackFieldStatus:
		return true
	}
	return false
}

// Apply copies the tagged field from snapshot onto target. List-valued
// fields fall back to an empty value rather than nil when absent in the
// snapshot.
func (f RollbackField) Apply(target, snapshot *Content) {
	switch f {
	case RollbackFieldTitle:
		target.Title = snapshot.Title
	case RollbackFieldDescription:
		target.Description = snapshot.Description
	case RollbackFieldBody:
		target.Body = snapshot.Body
	case RollbackFieldTags:
		if snapshot.Tags != nil {
			target.Tags = snapshot.Tags
		} else {
			target.Tags = []string{}
		}
	case RollbackFieldMedia:
		if snapshot.MediaReferences != nil {
			target.MediaReferences = snapshot.MediaReferences
		} else {
			target.MediaReferences = []MediaReference{}
		}
	case RollbackFieldContentType:
		target.ContentType = snapshot.ContentType
	case RollbackFieldMeta:
		target.Meta = snapshot.Meta
	case RollbackFieldStatus:
		target.Status = snapshot.Status
	}
}
