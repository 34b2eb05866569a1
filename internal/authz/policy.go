package authz

import (
	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// Actor identifies the authenticated caller for policy checks.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanEdit reports whether the actor may modify a moderated record.
// Admins edit anything; everyone else only their own submissions.
func CanEdit(ownerID, actorID uuid.UUID, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return ownerID != uuid.Nil && ownerID == actorID
}

// CanDelete reports whether the actor may remove a moderated record.
func CanDelete(isAdmin bool) bool {
	return isAdmin
}

// InitialStatus returns the moderation status assigned on creation.
// Admin submissions go live immediately; everything else waits for review.
func InitialStatus(isAdmin bool) enums.ModerationStatus {
	if isAdmin {
		return enums.ModerationStatusApproved
	}
	return enums.ModerationStatusPending
}
