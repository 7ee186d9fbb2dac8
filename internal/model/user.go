package model

import "time"

// User 用户模型（认证协作方的最小形态）
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName  string    `gorm:"size:255;not null;uniqueIndex;comment:用户名" json:"user_name"`
	Password  string    `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	Nickname  string    `gorm:"size:255;not null;comment:展示昵称" json:"nickname"`
	Avatar    *string   `gorm:"size:500;comment:用户头像" json:"avatar"`
	UserRole  string    `gorm:"size:32;not null;default:'user';comment:用户角色" json:"user_role"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.UserRole == "admin"
}
