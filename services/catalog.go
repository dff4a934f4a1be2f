package services

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"career-pathways-backend/models/catalog"
)

// CatalogQuery is the catalog browser's filter/sort state, recomputed over
// the full in-memory list on every request.
type CatalogQuery struct {
	Search      string
	Institution string
	Credits     string // any | lt30 | 30to60 | gt60
	Degree      string
	SortBy      string // "" | credits | alpha
	SortDir     string // asc | desc
}

// CatalogService serves campuses, pathways and courses out of hour-long
// in-memory memos over the database.
type CatalogService struct {
	db       *gorm.DB
	pathways *TTLCache[[]catalog.Pathway]
	campuses *TTLCache[[]catalog.Campus]
	programs *TTLCache[[]string]
	courses  *TTLCache[[]catalog.Course]
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:       db,
		pathways: NewTTLCache[[]catalog.Pathway](CatalogTTL),
		campuses: NewTTLCache[[]catalog.Campus](CatalogTTL),
		programs: NewTTLCache[[]string](CatalogTTL),
		courses:  NewTTLCache[[]catalog.Course](CatalogTTL),
	}
}

func (s *CatalogService) Pathways() ([]catalog.Pathway, error) {
	if cached, ok := s.pathways.Get("all"); ok {
		return cached, nil
	}
	var list []catalog.Pathway
	if err := s.db.Order("program_name").Find(&list).Error; err != nil {
		return nil, err
	}
	s.pathways.Set("all", list)
	return list, nil
}

func (s *CatalogService) Campuses() ([]catalog.Campus, error) {
	if cached, ok := s.campuses.Get("all"); ok {
		return cached, nil
	}
	var list []catalog.Campus
	if err := s.db.Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	s.campuses.Set("all", list)
	return list, nil
}

func (s *CatalogService) CoursesByCampus(campus string) ([]catalog.Course, error) {
	key := Normalize(campus)
	if cached, ok := s.courses.Get(key); ok {
		return cached, nil
	}
	var list []catalog.Course
	if err := s.db.Where("campus = ?", campus).Order("code").Find(&list).Error; err != nil {
		return nil, err
	}
	s.courses.Set(key, list)
	return list, nil
}

// ProgramsForCollege derives the program list for a selected college by
// normalized institution substring match over the pathway list, memoized
// per college.
func (s *CatalogService) ProgramsForCollege(college string) ([]string, error) {
	key := Normalize(college)
	if cached, ok := s.programs.Get(key); ok {
		return cached, nil
	}
	pathways, err := s.Pathways()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	programs := []string{}
	for _, p := range pathways {
		if !strings.Contains(Normalize(p.Institution), key) {
			continue
		}
		if !seen[p.ProgramName] {
			seen[p.ProgramName] = true
			programs = append(programs, p.ProgramName)
		}
	}
	sort.Strings(programs)
	s.programs.Set(key, programs)
	return programs, nil
}

var diacriticsStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and collapses punctuation and
// whitespace runs to single spaces, so "UH Mānoa" matches "uh manoa".
func Normalize(s string) string {
	if stripped, _, err := transform.String(diacriticsStripper, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// FilterPathways applies the browser's search, filters and sort to the full
// list and returns a new slice.
func FilterPathways(list []catalog.Pathway, q CatalogQuery) []catalog.Pathway {
	out := make([]catalog.Pathway, 0, len(list))
	search := Normalize(q.Search)
	institution := Normalize(q.Institution)
	degree := Normalize(q.Degree)

	for _, p := range list {
		name := Normalize(p.ProgramName)
		inst := Normalize(p.Institution)
		if search != "" && !strings.Contains(name, search) && !strings.Contains(inst, search) {
			continue
		}
		if institution != "" && !strings.Contains(inst, institution) {
			continue
		}
		if degree != "" && Normalize(p.Degree) != degree {
			continue
		}
		if !creditsMatch(q.Credits, parseCredits(p.TotalCredits)) {
			continue
		}
		out = append(out, p)
	}

	sortPathways(out, q.SortBy, q.SortDir)
	return out
}

func creditsMatch(filter string, credits float64) bool {
	switch filter {
	case "lt30":
		return credits < 30
	case "30to60":
		return credits >= 30 && credits <= 60
	case "gt60":
		return credits > 60
	default: // "" and "any"
		return true
	}
}

// parseCredits coerces the dataset's string credit totals; anything that
// does not parse counts as 0.
func parseCredits(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

var programCollator = collate.New(language.English, collate.Loose)

func sortPathways(list []catalog.Pathway, sortBy, sortDir string) {
	if sortBy == "" {
		return
	}
	desc := sortDir == "desc"
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "credits":
			return parseCredits(list[i].TotalCredits) < parseCredits(list[j].TotalCredits)
		case "alpha":
			return programCollator.CompareString(list[i].ProgramName, list[j].ProgramName) < 0
		default:
			return false
		}
	})
}
