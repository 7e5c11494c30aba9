package domain

import (
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"gorm.io/datatypes"
)

// PDFMapping caches the resolved pdf-field-name to canonical-key mapping
// for one user's upload of one PDF, keyed by content digest.
type PDFMapping struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"not null;uniqueIndex:idx_user_digest" json:"user_id"`
	PDFDigest string            `gorm:"column:pdf_digest;not null;uniqueIndex:idx_user_digest" json:"pdf_digest"`
	Mapping   datatypes.JSONMap `gorm:"not null;default:'{}'" json:"mapping"`
	CreatedAt int64             `gorm:"not null" json:"created_at"`
	UpdatedAt int64             `gorm:"not null" json:"updated_at"`

	User *userdomain.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PDFMapping) TableName() string {
	return "pdf_mappings"
}
