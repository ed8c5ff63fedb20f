package models

import "time"

// Setting is a key/value configuration entry editable from the back office.
type Setting struct {
	SettingID   int        `gorm:"primaryKey;autoIncrement;column:setting_id" json:"setting_id"`
	Key         string     `gorm:"column:setting_key;unique" json:"key"`
	Value       string     `gorm:"column:setting_value" json:"value"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	Category    *string    `gorm:"column:category" json:"category,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Setting) TableName() string {
	return "settings"
}
