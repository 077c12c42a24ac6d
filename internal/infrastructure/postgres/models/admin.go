package models

import "time"

type AdminModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"uniqueIndex"`
	Username     string    `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
}

func (AdminModel) TableName() string {
	return "admins"
}

type AdminActionModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	AdminID   string    `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"not null"`
	TargetID  string    `gorm:"type:uuid;index"`
	Details   string
	CreatedAt time.Time `gorm:"index"`
}

func (AdminActionModel) TableName() string {
	return "admin_actions"
}

type PasswordResetModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	Used      bool      `gorm:"not null;default:false"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (PasswordResetModel) TableName() string {
	return "password_resets"
}
