package services

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"career-pathways-backend/config"
	"career-pathways-backend/models/catalog"
	"career-pathways-backend/wizard"
)

const ErrNoRoadmapTemplate = "no roadmap template for this campus/major combination"

// PathwayLister is the slice of the catalog the roadmap builder needs.
type PathwayLister interface {
	Pathways() ([]catalog.Pathway, error)
}

// RoadmapService assembles a semester plan for a freshly saved profile from
// the pathway template matching its campus and program. A missing template
// is not an error: the profile is saved either way and the caller reports
// the partial outcome.
type RoadmapService struct {
	catalog PathwayLister
}

func NewRoadmapService(catalog PathwayLister) *RoadmapService {
	return &RoadmapService{catalog: catalog}
}

type roadmap struct {
	Career       string          `json:"career"`
	Program      string          `json:"program"`
	Institution  string          `json:"institution"`
	TotalCredits string          `json:"totalCredits"`
	Plan         json.RawMessage `json:"plan"`
}

// Generate returns the roadmap JSON and whether one could be built. The
// third value carries the warning for the partial-success path.
func (s *RoadmapService) Generate(form wizard.Form) (string, bool, string) {
	pathways, err := s.catalog.Pathways()
	if err != nil {
		config.Logger.Warn("roadmap generation could not load pathways", zap.Error(err))
		return "", false, ErrNoRoadmapTemplate
	}

	tpl, ok := matchTemplate(pathways, form.College, form.Program)
	if !ok || strings.TrimSpace(tpl.PathwayData) == "" {
		return "", false, ErrNoRoadmapTemplate
	}

	var plan json.RawMessage
	if err := json.Unmarshal([]byte(tpl.PathwayData), &plan); err != nil {
		config.Logger.Warn("pathway template holds invalid JSON",
			zap.String("program", tpl.ProgramName), zap.Error(err))
		return "", false, ErrNoRoadmapTemplate
	}

	out, err := json.Marshal(roadmap{
		Career:       form.Career,
		Program:      tpl.ProgramName,
		Institution:  tpl.Institution,
		TotalCredits: tpl.TotalCredits,
		Plan:         plan,
	})
	if err != nil {
		return "", false, ErrNoRoadmapTemplate
	}
	return string(out), true, ""
}

func matchTemplate(pathways []catalog.Pathway, college, program string) (catalog.Pathway, bool) {
	wantProgram := Normalize(program)
	wantCollege := Normalize(college)
	for _, p := range pathways {
		if Normalize(p.ProgramName) == wantProgram &&
			strings.Contains(Normalize(p.Institution), wantCollege) {
			return p, true
		}
	}
	return catalog.Pathway{}, false
}
