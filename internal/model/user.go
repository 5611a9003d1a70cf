package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Image     string    `gorm:"type:varchar(255)" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 创建前生成用户ID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Update 部分更新资料，空白字段视为不修改；password 须为已加密的值
func (u *User) Update(email, username, password, bio, image string) {
	if notBlank(email) {
		u.Email = email
	}
	if notBlank(username) {
		u.Username = username
	}
	if notBlank(password) {
		u.Password = password
	}
	if notBlank(bio) {
		u.Bio = bio
	}
	if notBlank(image) {
		u.Image = image
	}
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
