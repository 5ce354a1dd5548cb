package domain

// ContentStatus lifecycle state of a content item
type ContentStatus string

const (
	StatusDraft       ContentStatus = "DRAFT"
	StatusUnderReview ContentStatus = "UNDER_REVIEW"
	StatusApproved    ContentStatus = "APPROVED"
	StatusRejected    ContentStatus = "REJECTED"
	StatusScheduled   ContentStatus = "SCHEDULED"
	StatusPublished   ContentStatus = "PUBLISHED"
	StatusArchived    ContentStatus = "ARCHIVED"
	StatusDeleted     ContentStatus = "DELETED"
)

// allowedTransitions is the fixed status transition table. It is built once
// at package init and never mutated afterwards.
var allowedTransitions = map[ContentStatus][]ContentStatus{
	StatusDraft:       {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusRejected:    {StatusDraft}, // can be re-edited
	StatusApproved:    {StatusPublished, StatusScheduled},
	StatusScheduled:   {StatusPublished}, // auto-publish via scheduler
	StatusPublished:   {StatusArchived},
	StatusArchived:    {StatusPublished},
	StatusDeleted:     {}, // no further transitions
}

// CanTransitionTo reports whether the transition table permits moving from s
// to next.
func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status value
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusApproved, StatusRejected,
		StatusScheduled, StatusPublished, StatusArchived, StatusDeleted:
		return true
	}
	return false
}
