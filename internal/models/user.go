package models

import (
	"time"
)

// User 用户模型
type User struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username     string    `gorm:"size:100;not null;unique" json:"username"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime   time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (User) TableName() string {
	return "users"
}
