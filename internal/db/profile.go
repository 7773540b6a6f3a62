package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// RoleAdmin 管理员角色，可以访问后台。
	RoleAdmin = "admin"
	// RoleUser 普通用户角色。
	RoleUser = "user"
)

// Profile 定义了用户资料模型，同时承担登录账号职责。
type Profile struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Avatar   string
	Bio      string
	Role     string `gorm:"not null;default:user"`
}

// EnsureAdmin 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
func EnsureAdmin(email, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing Profile
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&Profile{
			Name:     trimmedEmail[:strings.Index(trimmedEmail+"@", "@")],
			Email:    trimmedEmail,
			Password: string(hashed),
			Role:     RoleAdmin,
		}).Error
	}

	return nil
}
