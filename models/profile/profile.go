package profile

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// StudentProfile is created once when the wizard is submitted and never
// mutated afterwards; edits create a new profile.
type StudentProfile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UID       string `json:"uid" gorm:"uniqueIndex;not null"`
	UserID    uint   `json:"user_id" gorm:"index"`
	Career    string `json:"career"`
	College   string `json:"college"`
	Program   string `json:"program"`
	Interests string `json:"-" gorm:"type:text"` // JSON array of labels
	Skills    string `json:"-" gorm:"type:text"` // JSON array of labels
	Roadmap   string `json:"-" gorm:"type:text"` // JSON semester plan, empty if none
	HasRoadmap bool  `json:"has_roadmap"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// View is the JSON shape handlers return: the text columns decoded back
// into arrays.
type View struct {
	ID         uint      `json:"id"`
	UID        string    `json:"uid"`
	Career     string    `json:"career"`
	College    string    `json:"college"`
	Program    string    `json:"program"`
	Interests  []string  `json:"interests"`
	Skills     []string  `json:"skills"`
	HasRoadmap bool      `json:"has_roadmap"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *StudentProfile) ToView() View {
	v := View{
		ID:         p.ID,
		UID:        p.UID,
		Career:     p.Career,
		College:    p.College,
		Program:    p.Program,
		HasRoadmap: p.HasRoadmap,
		CreatedAt:  p.CreatedAt,
	}
	_ = json.Unmarshal([]byte(p.Interests), &v.Interests)
	_ = json.Unmarshal([]byte(p.Skills), &v.Skills)
	return v
}

func EncodeLabels(labels []string) string {
	b, err := json.Marshal(labels)
	if err != nil {
		return "[]"
	}
	return string(b)
}
