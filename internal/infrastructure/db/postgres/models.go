package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/domain/entities"
)

// StringList serializes a token list into a single text column so the same
// model works on postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	return string(data), err
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	data, err := json.Marshal(l)
	return string(data), err
}

func (l *UUIDList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = UUIDList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into UUIDList", value)
	}
}

type UserModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	FirstName           string
	LastName            string
	Email               string     `gorm:"uniqueIndex;not null"`
	Password            string     `gorm:"not null"`
	IsNative            bool       `gorm:"default:true"`
	SessionTokens       StringList `gorm:"type:text"`
	ResetPasswordToken  string     `gorm:"index"`
	ResetPasswordExpiry time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func userModelFromEntity(u *entities.User) *UserModel {
	return &UserModel{
		ID:                  u.ID,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Password:            u.PasswordHash,
		IsNative:            u.IsNative,
		SessionTokens:       StringList(u.SessionTokens),
		ResetPasswordToken:  u.ResetPasswordToken,
		ResetPasswordExpiry: u.ResetPasswordExpiry,
	}
}

func (m *UserModel) toEntity() *entities.User {
	return &entities.User{
		ID:                  m.ID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		PasswordHash:        m.Password,
		IsNative:            m.IsNative,
		SessionTokens:       []string(m.SessionTokens),
		ResetPasswordToken:  m.ResetPasswordToken,
		ResetPasswordExpiry: m.ResetPasswordExpiry,
	}
}

type CategoryModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string    `gorm:"not null"`
	TransactionType string    `gorm:"not null"`
	OwnerID         uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func categoryModelFromEntity(c *entities.Category) *CategoryModel {
	return &CategoryModel{
		ID:              c.ID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Name:            c.Name,
		TransactionType: string(c.Type),
		OwnerID:         c.OwnerID,
	}
}

func (m *CategoryModel) toEntity() *entities.Category {
	return &entities.Category{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Name:      m.Name,
		Type:      entities.TransactionType(m.TransactionType),
		OwnerID:   m.OwnerID,
	}
}

type TransactionModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TransactionDate time.Time `gorm:"index;not null"`
	Name            string    `gorm:"not null"`
	Amount          float64   `gorm:"not null"`
	Description     string
	CategoryIDs     UUIDList  `gorm:"type:text"`
	OwnerID         uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func transactionModelFromEntity(t *entities.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              t.ID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		TransactionDate: t.Date,
		Name:            t.Name,
		Amount:          t.Amount,
		Description:     t.Description,
		CategoryIDs:     UUIDList(t.CategoryIDs),
		OwnerID:         t.OwnerID,
	}
}

func (m *TransactionModel) toEntity() *entities.Transaction {
	return &entities.Transaction{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Date:        m.TransactionDate,
		Name:        m.Name,
		Amount:      m.Amount,
		Description: m.Description,
		CategoryIDs: []uuid.UUID(m.CategoryIDs),
		OwnerID:     m.OwnerID,
	}
}
