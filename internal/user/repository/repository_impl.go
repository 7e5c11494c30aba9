package repository

import (
	"context"

	"github.com/formfillhq/formfill/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) UpdatePro(ctx context.Context, db *gorm.DB, id string, isPro bool, customerRef string) error {
	updates := map[string]any{"is_pro": isPro}
	if customerRef != "" {
		updates["customer_ref"] = customerRef
	}
	return db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repo) UpdateContact(ctx context.Context, db *gorm.DB, id string, fullName, phone *string) error {
	updates := map[string]any{}
	if fullName != nil {
		updates["full_name"] = *fullName
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repo) DeleteCascade(ctx context.Context, db *gorm.DB, id string) error {
	for _, stmt := range []string{
		"DELETE FROM profiles WHERE user_id = ?",
		"DELETE FROM pdf_mappings WHERE user_id = ?",
		"DELETE FROM sessions WHERE user_id = ?",
		"DELETE FROM users WHERE id = ?",
	} {
		if err := db.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
