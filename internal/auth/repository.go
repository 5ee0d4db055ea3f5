package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	Update(user *User) error
	ListActiveEmails() ([]string, error)
	ListActiveIDs() ([]uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// ListActiveEmails powers event announcement fan-out
func (r *repository) ListActiveEmails() ([]string, error) {
	var emails []string
	err := r.db.Model(&User{}).
		Where("status = ?", "active").
		Pluck("email", &emails).Error
	return emails, err
}

func (r *repository) ListActiveIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&User{}).
		Where("status = ?", "active").
		Pluck("id", &ids).Error
	return ids, err
}
