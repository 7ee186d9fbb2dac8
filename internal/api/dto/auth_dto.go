package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Nickname string `json:"nickname" binding:"required,min=1,max=32"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID       int64   `json:"id"`
	UserName string  `json:"user_name"`
	Nickname string  `json:"nickname"`
	Avatar   *string `json:"avatar"`
	UserRole string  `json:"user_role"`
}

// AuthData 认证结果
type AuthData struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
