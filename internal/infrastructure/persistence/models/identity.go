package models

import (
	"github.com/storefront/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	EntityModel
	Name   string `gorm:"type:varchar(255);not null"`
	Email  string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone  string `gorm:"type:varchar(32)"`
	Role   string `gorm:"type:varchar(16);not null"`
	Status string `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: m.ToBaseEntity(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Role:       identity.UserRole(m.Role),
		Status:     identity.UserStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.Phone = u.Phone
	m.Role = string(u.Role)
	m.Status = string(u.Status)
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
