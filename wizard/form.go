package wizard

// Steps of the guided profile flow.
const (
	StepCareer  = 1
	StepCollege = 2
	StepInterests = 3
	StepSkills    = 4
	StepReview    = 5
	StepDone      = 6
)

// Kind selects which label set an operation targets.
type Kind string

const (
	KindInterests Kind = "interests"
	KindSkills    Kind = "skills"
)

// Form holds everything the wizard collects. It is mutated only through
// Session methods, which hold the session lock.
type Form struct {
	Career          string   `json:"career"`
	CareerID        string   `json:"careerId"`
	CareerCode      string   `json:"careerCode"`
	CareerValidated bool     `json:"careerValidated"`
	College         string   `json:"college"`
	Program         string   `json:"program"`
	Interests       []string `json:"interests"`
	Skills          []string `json:"skills"`
}

// setTypedCareer records free text. Any manual edit invalidates a previously
// selected suggestion in the same update.
func (f *Form) setTypedCareer(text string) {
	f.Career = text
	f.CareerID = ""
	f.CareerCode = ""
	f.CareerValidated = false
}

// setSelectedCareer records an autocomplete pick atomically.
func (f *Form) setSelectedCareer(name, id, code string) {
	f.Career = name
	f.CareerID = id
	f.CareerCode = code
	f.CareerValidated = true
}

// setCollege always resets the program: the program must belong to the
// selected college's list, and the reset is what enforces that.
func (f *Form) setCollege(college string) {
	f.College = college
	f.Program = ""
}

func (f *Form) labels(kind Kind) []string {
	if kind == KindSkills {
		return f.Skills
	}
	return f.Interests
}

func (f *Form) setLabels(kind Kind, labels []string) {
	if kind == KindSkills {
		f.Skills = labels
	} else {
		f.Interests = labels
	}
}

// stepValid reports whether the given step's gate holds for this form.
func (f *Form) stepValid(step int) bool {
	switch step {
	case StepCareer:
		return f.CareerValidated
	case StepCollege:
		return f.College != "" && f.Program != ""
	case StepInterests:
		return len(f.Interests) > 0
	case StepSkills:
		return len(f.Skills) > 0
	case StepReview:
		return true
	default:
		return false
	}
}
