package domain

import userdomain "github.com/formfillhq/formfill/internal/user/domain"

// Session is a server-side login session. Valid iff looked up before
// ExpiresAt; there is no renewal. Timestamps are Unix seconds.
type Session struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
	ExpiresAt int64  `gorm:"index;not null" json:"expires_at"`

	User *userdomain.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

// MagicToken is a single-use login credential emailed to an address. It
// transitions unused to used exactly once; expired tokens stay in place,
// permanently unusable.
type MagicToken struct {
	Token     string `gorm:"primaryKey" json:"token"`
	Email     string `gorm:"index;not null" json:"email"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
	ExpiresAt int64  `gorm:"not null" json:"expires_at"`
	Used      bool   `gorm:"not null;default:false" json:"used"`
}

func (MagicToken) TableName() string {
	return "magic_tokens"
}
