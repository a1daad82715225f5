package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nutritrack/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, changes model.ProfileChanges) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// profileColumns maps profile fields to their relational columns.
var profileColumns = map[model.ProfileField]string{
	model.FieldFirstName:  "first_name",
	model.FieldLastName:   "last_name",
	model.FieldPhone:      "phone",
	model.FieldBio:        "bio",
	model.FieldPosition:   "position",
	model.FieldCountry:    "address_country",
	model.FieldCity:       "address_city",
	model.FieldState:      "address_state",
	model.FieldPostalCode: "address_postal_code",
	model.FieldTaxID:      "address_tax_id",
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateProfile writes only the supplied fields and returns the stored user.
func (r *userRepository) UpdateProfile(ctx context.Context, id string, changes model.ProfileChanges) (*model.User, error) {
	if len(changes) > 0 {
		updates := make(map[string]interface{}, len(changes))
		for field, value := range changes {
			if col, ok := profileColumns[field]; ok {
				updates[col] = value
			}
		}
		err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, translate(err)
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateLastLogin touches only the last_login column.
func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return translate(r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error)
}

// translate maps GORM errors onto the repository sentinels. The DB must be
// opened with TranslateError so duplicate keys are recognised.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
