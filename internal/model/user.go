// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// User 对应 users 表。
type User struct {
	UserID         string    `gorm:"column:user_id;type:varchar(255);primaryKey" json:"user_id"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(255);not null" json:"-"`
	RegisterDate   time.Time `gorm:"column:register_date;autoCreateTime" json:"register_date"`

	// 外键定义在子表一侧
	Questions []Question `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Feedbacks []Feedback `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}
