package community

import (
	"time"

	"gorm.io/gorm"
)

type Internship struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `json:"title" gorm:"not null"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Field       string `json:"field" gorm:"index"`
	Description string `json:"description" gorm:"type:text"`
	ApplyURL    string `json:"applyUrl"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Alumnus struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `json:"name" gorm:"not null"`
	Campus     string `json:"campus" gorm:"index"`
	Major      string `json:"major"`
	GradYear   int    `json:"gradYear"`
	Career     string `json:"career"`
	Highlight  string `json:"highlight" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
