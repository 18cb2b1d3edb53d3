package entity

import (
	"time"
)

type Event struct {
	Id          EventId `gorm:"type:text;primaryKey"`
	Date        DateKey `gorm:"type:text;not null;index"`
	Title       string  `gorm:"not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (Event) TableName() string { return "events" }
