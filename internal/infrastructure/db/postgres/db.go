package postgres

import (
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres and runs migrations. TranslateError lets the
// repositories detect unique-index violations as gorm.ErrDuplicatedKey
// instead of driver-specific error codes.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &CategoryModel{}, &TransactionModel{})
}
