package model

import (
	"time"

	"gorm.io/gorm"
)

type DTO struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

type TokenClaim struct {
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	IsManager bool   `json:"isManager"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type Pagination struct {
	Limit *int `query:"limit"`
	Page  *int `query:"page"`
}
