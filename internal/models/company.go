package models

import "time"

// Company is an authorised company record. Nullable columns are pointers so
// selective inserts and updates can tell "not set" from a zero value.
type Company struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	Name         *string    `json:"name"`
	Code         *string    `gorm:"uniqueIndex" json:"code"`
	ContactName  *string    `json:"contactName"`
	ContactPhone *string    `json:"contactPhone"`
	Email        *string    `json:"email"`
	Address      *string    `json:"address"`
	RegisteredIP *int64     `json:"registeredIp"`
	Status       *int       `json:"status"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	Remark       *string    `json:"remark"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Company) TableName() string {
	return "auth_companies"
}

const (
	CompanyStatusDisabled = 0
	CompanyStatusActive   = 1
)
