package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"career-pathways-backend/models/profile"
	"career-pathways-backend/wizard"
)

var ErrIncompleteForm = errors.New("profile form is incomplete")

// ProfileStore is the persistence boundary for saved profiles.
type ProfileStore interface {
	Create(p *profile.StudentProfile) error
	ListByUser(userID uint) ([]profile.StudentProfile, error)
}

type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Create(p *profile.StudentProfile) error {
	return s.db.Create(p).Error
}

func (s *GormProfileStore) ListByUser(userID uint) ([]profile.StudentProfile, error) {
	var list []profile.StudentProfile
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

// SubmitResult maps onto the two confirmation paths: full success when the
// roadmap was generated, a warning when only the profile was saved.
type SubmitResult struct {
	Profile      profile.StudentProfile
	HasRoadmap   bool
	RoadmapError string
}

// ProfileSubmitter persists a completed wizard form exactly once per call
// and attaches the roadmap-generation outcome.
type ProfileSubmitter struct {
	store    ProfileStore
	roadmaps *RoadmapService
}

func NewProfileSubmitter(store ProfileStore, roadmaps *RoadmapService) *ProfileSubmitter {
	return &ProfileSubmitter{store: store, roadmaps: roadmaps}
}

func (s *ProfileSubmitter) Submit(userID uint, form wizard.Form) (SubmitResult, error) {
	if !formComplete(form) {
		return SubmitResult{}, ErrIncompleteForm
	}

	roadmapJSON, generated, roadmapErr := s.roadmaps.Generate(form)

	p := profile.StudentProfile{
		UID:        uuid.NewString(),
		UserID:     userID,
		Career:     form.Career,
		College:    form.College,
		Program:    form.Program,
		Interests:  profile.EncodeLabels(form.Interests),
		Skills:     profile.EncodeLabels(form.Skills),
		Roadmap:    roadmapJSON,
		HasRoadmap: generated,
	}
	if err := s.store.Create(&p); err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{Profile: p, HasRoadmap: generated, RoadmapError: roadmapErr}, nil
}

func formComplete(f wizard.Form) bool {
	return f.CareerValidated &&
		f.College != "" && f.Program != "" &&
		len(f.Interests) > 0 && len(f.Skills) > 0
}
