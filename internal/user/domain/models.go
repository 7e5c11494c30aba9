package domain

// User is an account holder, created on first verified magic-link login.
// Timestamps are Unix seconds.
type User struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt   int64  `gorm:"not null" json:"created_at"`
	IsPro       bool   `gorm:"not null;default:false" json:"is_pro"`
	CustomerRef string `json:"customer_ref,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func (User) TableName() string {
	return "users"
}
