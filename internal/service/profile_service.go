package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ProfileService 提供用户资料与认证能力。
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService returns a new ProfileService instance.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// List returns all profiles, newest first.
func (s *ProfileService) List() ([]db.Profile, error) {
	var profiles []db.Profile
	if err := s.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// GetByID fetches a single profile.
func (s *ProfileService) GetByID(id uint) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Authenticate 校验邮箱与密码，成功时返回对应用户。
func (s *ProfileService) Authenticate(email, password string) (*db.Profile, error) {
	trimmed := strings.TrimSpace(email)
	var profile db.Profile
	if err := s.db.Where("email = ?", trimmed).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &profile, nil
}

// Delete removes a profile and detaches its comments.
func (s *ProfileService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return fmt.Errorf("delete profile comments: %w", err)
		}
		if err := tx.Delete(&db.Profile{}, id).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
}
