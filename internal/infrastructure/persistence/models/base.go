package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// EntityModel provides common persistence fields for entities
type EntityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToBaseEntity converts the model fields to a domain BaseEntity
func (m *EntityModel) ToBaseEntity() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromBaseEntity populates the model fields from a domain BaseEntity
func (m *EntityModel) FromBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots,
// including the version column used for optimistic locking
type AggregateModel struct {
	EntityModel
	Version int `gorm:"not null;default:1"`
}

// ToBaseAggregateRoot converts the model fields to a domain BaseAggregateRoot
func (m *AggregateModel) ToBaseAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.ToBaseEntity(),
		Version:    m.Version,
	}
}

// FromBaseAggregateRoot populates the model fields from a domain BaseAggregateRoot
func (m *AggregateModel) FromBaseAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromBaseEntity(a.BaseEntity)
	m.Version = a.Version
}
