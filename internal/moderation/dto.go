package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/mstanchev/pricewatch-backend/pkg/db/models"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
)

// QueueItem is one pending submission awaiting review, either a store or
// a product.
type QueueItem struct {
	Kind      enums.ModeratedKind    `json:"kind"`
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Region    *string                `json:"region,omitempty"`
	Category  *string                `json:"category,omitempty"`
	Status    enums.ModerationStatus `json:"status"`
	OwnerID   uuid.UUID              `json:"owner_id"`
	CreatedAt time.Time              `json:"created_at"`
}

func itemFromStore(m *models.Store) QueueItem {
	region := m.Region
	return QueueItem{
		Kind:      enums.ModeratedKindStore,
		ID:        m.ID,
		Name:      m.Name,
		Region:    &region,
		Status:    m.Status,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}

func itemFromProduct(m *models.Product) QueueItem {
	return QueueItem{
		Kind:      enums.ModeratedKindProduct,
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Status:    m.Status,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}
