package db

import "gorm.io/gorm"

// Account 定义了登录账号模型。
// Identity 在注册时生成，之后不再变更，是 UserRecord 的外键。
type Account struct {
	gorm.Model
	Identity string `gorm:"uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
}
