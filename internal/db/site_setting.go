package db

import "gorm.io/gorm"

const (
	// SettingKeyBrandName 站点品牌名称。
	SettingKeyBrandName = "brand_name"
	// SettingKeyBrandEmail 站点联系邮箱。
	SettingKeyBrandEmail = "brand_email"
	// SettingKeyBrandPhone 站点联系电话。
	SettingKeyBrandPhone = "brand_phone"
	// SettingKeyOpenRouterAPIKey OpenRouter 平台的 API Key。
	SettingKeyOpenRouterAPIKey = "openrouter_api_key"
	// SettingKeyPexelsAPIKey Pexels 图片搜索的 API Key。
	SettingKeyPexelsAPIKey = "pexels_api_key"
	// SettingKeyHeadScripts 注入页面 head 的脚本片段。
	SettingKeyHeadScripts = "head_scripts"
	// SettingKeyBodyScripts 注入页面 body 的脚本片段。
	SettingKeyBodyScripts = "body_scripts"
)

// SiteSetting 以键值对形式存储站点配置
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}
