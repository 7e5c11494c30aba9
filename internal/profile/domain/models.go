package domain

import (
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"gorm.io/datatypes"
)

// Profile is a named bundle of canonical-field values owned by one user.
type Profile struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"not null;index" json:"user_id"`
	Name      string            `gorm:"not null" json:"name"`
	Data      datatypes.JSONMap `gorm:"not null;default:'{}'" json:"data"`
	CreatedAt int64             `gorm:"not null" json:"created_at"`
	UpdatedAt int64             `gorm:"not null" json:"updated_at"`

	User *userdomain.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
