package model

type User struct {
	DTO
	Username     string `gorm:"size:100;uniqueIndex" validate:"required" json:"username"`
	Email        string `gorm:"size:255" validate:"omitempty,email" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	IsManager    bool   `gorm:"default:false" json:"isManager"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}
