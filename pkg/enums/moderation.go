package enums

import "fmt"

// ModerationStatus represents the canonical moderation_status enum in Postgres.
// Stores and products share the same lifecycle.
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

var validModerationStatuses = []ModerationStatus{
	ModerationStatusPending,
	ModerationStatusApproved,
	ModerationStatusRejected,
}

// String implements fmt.Stringer.
func (s ModerationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ModerationStatus.
func (s ModerationStatus) IsValid() bool {
	for _, candidate := range validModerationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ModerationStatus) IsTerminal() bool {
	return s == ModerationStatusApproved || s == ModerationStatusRejected
}

// ParseModerationStatus converts raw input into a ModerationStatus.
func ParseModerationStatus(value string) (ModerationStatus, error) {
	for _, candidate := range validModerationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid moderation status %q", value)
}

// ModeratedKind distinguishes the two record families in the moderation queue.
type ModeratedKind string

const (
	ModeratedKindStore   ModeratedKind = "store"
	ModeratedKindProduct ModeratedKind = "product"
)

var validModeratedKinds = []ModeratedKind{
	ModeratedKindStore,
	ModeratedKindProduct,
}

// String implements fmt.Stringer.
func (k ModeratedKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ModeratedKind.
func (k ModeratedKind) IsValid() bool {
	for _, candidate := range validModeratedKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseModeratedKind converts raw input into a ModeratedKind.
func ParseModeratedKind(value string) (ModeratedKind, error) {
	for _, candidate := range validModeratedKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid moderated kind %q", value)
}
