package service

import (
	"fmt"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	BrandName        string
	BrandEmail       string
	BrandPhone       string
	OpenRouterAPIKey string
	PexelsAPIKey     string
	HeadScripts      string
	BodyScripts      string
}

// SiteSettingsInput 用于更新站点设置。
type SiteSettingsInput struct {
	BrandName        string
	BrandEmail       string
	BrandPhone       string
	OpenRouterAPIKey string
	PexelsAPIKey     string
	HeadScripts      string
	BodyScripts      string
}

var settingKeys = []string{
	db.SettingKeyBrandName,
	db.SettingKeyBrandEmail,
	db.SettingKeyBrandPhone,
	db.SettingKeyOpenRouterAPIKey,
	db.SettingKeyPexelsAPIKey,
	db.SettingKeyHeadScripts,
	db.SettingKeyBodyScripts,
}

// SiteSettingService 提供站点设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

// GetSettings 读取站点设置，如未设置将返回默认值。
func (s *SiteSettingService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{BrandName: "Inkwell"}

	var records []db.SiteSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeyBrandName:
			if strings.TrimSpace(record.Value) != "" {
				result.BrandName = record.Value
			}
		case db.SettingKeyBrandEmail:
			result.BrandEmail = record.Value
		case db.SettingKeyBrandPhone:
			result.BrandPhone = record.Value
		case db.SettingKeyOpenRouterAPIKey:
			result.OpenRouterAPIKey = record.Value
		case db.SettingKeyPexelsAPIKey:
			result.PexelsAPIKey = record.Value
		case db.SettingKeyHeadScripts:
			result.HeadScripts = record.Value
		case db.SettingKeyBodyScripts:
			result.BodyScripts = record.Value
		}
	}

	return result, nil
}

// UpdateSettings 保存站点设置，未填写品牌名称时回退默认值。
func (s *SiteSettingService) UpdateSettings(input SiteSettingsInput) (SiteSettings, error) {
	sanitized := SiteSettings{
		BrandName:        strings.TrimSpace(input.BrandName),
		BrandEmail:       strings.TrimSpace(input.BrandEmail),
		BrandPhone:       strings.TrimSpace(input.BrandPhone),
		OpenRouterAPIKey: strings.TrimSpace(input.OpenRouterAPIKey),
		PexelsAPIKey:     strings.TrimSpace(input.PexelsAPIKey),
		HeadScripts:      input.HeadScripts,
		BodyScripts:      input.BodyScripts,
	}

	if sanitized.BrandName == "" {
		sanitized.BrandName = "Inkwell"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pairs := []struct {
			key   string
			value string
		}{
			{db.SettingKeyBrandName, sanitized.BrandName},
			{db.SettingKeyBrandEmail, sanitized.BrandEmail},
			{db.SettingKeyBrandPhone, sanitized.BrandPhone},
			{db.SettingKeyOpenRouterAPIKey, sanitized.OpenRouterAPIKey},
			{db.SettingKeyPexelsAPIKey, sanitized.PexelsAPIKey},
			{db.SettingKeyHeadScripts, sanitized.HeadScripts},
			{db.SettingKeyBodyScripts, sanitized.BodyScripts},
		}
		for _, pair := range pairs {
			if err := upsertSetting(tx, pair.key, pair.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
