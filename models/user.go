package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Role struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// UserHasRole is the capability lookup used by authorization guards.
func UserHasRole(db *gorm.DB, userID, role string) (bool, error) {
	var count int64
	err := db.Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

// RolesForUser returns the role names held by the user, defaulting to
// ["user"] when none are assigned.
func RolesForUser(db *gorm.DB, userID string) ([]string, error) {
	var names []string
	err := db.Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = []string{RoleUser}
	}
	return names, nil
}

// SeedRoles ensures the built-in role rows exist.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{RoleUser, RoleAdmin} {
		var role Role
		err := db.Where("name = ?", name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&Role{ID: uuid.NewString(), Name: name}).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// GrantRole assigns the named role to the user, creating the role row if it
// does not exist yet. Granting an already-held role is a no-op.
func GrantRole(db *gorm.DB, userID, roleName string) error {
	var role Role
	err := db.Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = Role{ID: uuid.NewString(), Name: roleName}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	user := User{ID: userID}
	return db.Model(&user).Association("Roles").Append(&role)
}

// RevokeRole removes the named role from the user if held.
func RevokeRole(db *gorm.DB, userID, roleName string) error {
	var role Role
	err := db.Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user := User{ID: userID}
	return db.Model(&user).Association("Roles").Delete(&role)
}
