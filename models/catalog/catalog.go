package catalog

import "time"

// Pathway is one degree offering at an institution. TotalCredits stays a
// string because the source dataset carries values like "60" and "60-63".
type Pathway struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ProgramName string `json:"programName"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	TotalCredits string `json:"totalCredits"`
	PathwayData string `json:"pathwayData,omitempty" gorm:"type:text"` // JSON year/semester structure
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type Campus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name" gorm:"unique;not null"`
}

type Course struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Campus  string `json:"campus" gorm:"index"`
	Code    string `json:"code"`
	Title   string `json:"title"`
	Credits int    `json:"credits"`
}
