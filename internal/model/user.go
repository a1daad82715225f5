package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the access level attached to a user.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Address is the optional postal block of a profile.
type Address struct {
	Country    string `json:"country,omitempty" bson:"country,omitempty" gorm:"size:50"`
	City       string `json:"city,omitempty" bson:"city,omitempty" gorm:"size:50"`
	State      string `json:"state,omitempty" bson:"state,omitempty" gorm:"size:50"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty" gorm:"size:20"`
	TaxID      string `json:"taxId,omitempty" bson:"taxId,omitempty" gorm:"size:50"`
}

// User is a registered account and its profile.
type User struct {
	ID            string     `json:"id" bson:"_id" gorm:"type:char(36);primaryKey"`
	Email         string     `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string     `json:"-" bson:"password" gorm:"column:password;size:255;not null"` // Never expose in JSON
	FirstName     string     `json:"firstName" bson:"firstName" gorm:"size:30;not null"`
	LastName      string     `json:"lastName" bson:"lastName" gorm:"size:30;not null"`
	Phone         string     `json:"phone,omitempty" bson:"phone,omitempty" gorm:"size:20"`
	Bio           string     `json:"bio,omitempty" bson:"bio,omitempty" gorm:"size:500"`
	ProfileImage  *string    `json:"profileImage" bson:"profileImage" gorm:"size:512"`
	Position      string     `json:"position,omitempty" bson:"position,omitempty" gorm:"size:100"`
	Address       Address    `json:"address" bson:"address" gorm:"embedded;embeddedPrefix:address_"`
	Role          Role       `json:"role" bson:"role" gorm:"type:varchar(20);not null;default:'user'"`
	IsActive      bool       `json:"isActive" bson:"isActive" gorm:"not null;default:true"`
	EmailVerified bool       `json:"emailVerified" bson:"emailVerified" gorm:"not null;default:false"`
	LastLogin     *time.Time `json:"lastLogin" bson:"lastLogin"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// BeforeCreate sets the ID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// FormattedAddress joins city, state and country, skipping blanks.
// It returns nil when none of them is set.
func (u *User) FormattedAddress() *string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.Address.City, u.Address.State, u.Address.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ", ")
	return &joined
}

// PublicUser is the client facing projection of a User.
type PublicUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	FullName         string     `json:"fullName"`
	Phone            string     `json:"phone,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	ProfileImage     *string    `json:"profileImage"`
	Position         string     `json:"position,omitempty"`
	Address          Address    `json:"address"`
	FormattedAddress *string    `json:"formattedAddress"`
	Role             Role       `json:"role"`
	IsActive         bool       `json:"isActive"`
	EmailVerified    bool       `json:"emailVerified"`
	LastLogin        *time.Time `json:"lastLogin"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Public strips the password and adds derived fields.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		FullName:         u.FullName(),
		Phone:            u.Phone,
		Bio:              u.Bio,
		ProfileImage:     u.ProfileImage,
		Position:         u.Position,
		Address:          u.Address,
		FormattedAddress: u.FormattedAddress(),
		Role:             u.Role,
		IsActive:         u.IsActive,
		EmailVerified:    u.EmailVerified,
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// ProfileField names a mutable profile attribute. Values are the document
// paths; relational stores map them to column names.
type ProfileField string

const (
	FieldFirstName  ProfileField = "firstName"
	FieldLastName   ProfileField = "lastName"
	FieldPhone      ProfileField = "phone"
	FieldBio        ProfileField = "bio"
	FieldPosition   ProfileField = "position"
	FieldCountry    ProfileField = "address.country"
	FieldCity       ProfileField = "address.city"
	FieldState      ProfileField = "address.state"
	FieldPostalCode ProfileField = "address.postalCode"
	FieldTaxID      ProfileField = "address.taxId"
)

// ProfileChanges holds the profile attributes an update actually supplied.
type ProfileChanges map[ProfileField]string
