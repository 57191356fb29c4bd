package models

import "time"

// Category groups products. Exactly one row is the default category
// (config.DefaultCategoryID); it absorbs products whose category is
// deleted and can itself never be edited or deleted.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null;unique"`
	Description string `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
