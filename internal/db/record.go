package db

import "gorm.io/gorm"

// UserRecord 定义了每个账号对应的资料文档。
// 六个平台链接以独立的可空列存储，而不是数组；
// 编辑页看到的链接列表是加载时由非空列投影出来的视图。
type UserRecord struct {
	gorm.Model
	Identity  string  `gorm:"uniqueIndex;not null" json:"identity"`
	Email     *string `json:"email"`
	FirstName *string `gorm:"column:first_name" json:"firstName"`
	LastName  *string `gorm:"column:last_name" json:"lastName"`
	Bio       *string `json:"bio"`

	Github    *string `json:"github"`
	Linkedin  *string `json:"linkedin"`
	Twitter   *string `json:"twitter"`
	Youtube   *string `json:"youtube"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
}

// LinkColumns 按固定平台顺序返回链接列名到当前值的映射。
func (r *UserRecord) LinkColumns() map[string]*string {
	return map[string]*string{
		"github":    r.Github,
		"linkedin":  r.Linkedin,
		"twitter":   r.Twitter,
		"youtube":   r.Youtube,
		"facebook":  r.Facebook,
		"instagram": r.Instagram,
	}
}
