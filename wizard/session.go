package wizard

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrStepInvalid   = errors.New("current step is not complete")
	ErrBadJump       = errors.New("jump is only allowed from review back to an earlier step")
	ErrNotReview     = errors.New("submission is only allowed from the review step")
	ErrGenerating    = errors.New("a generation call is already in flight for this step")
	ErrSubmitting    = errors.New("a submission is already in flight")
	ErrAllSelected   = errors.New("deselect some to regenerate")
	ErrUnknownLabel  = errors.New("label is not part of the current generated set")
	ErrAlreadyDone   = errors.New("wizard already completed")
)

// Session is one user's wizard visit. All mutation funnels through methods
// that hold mu; nothing outside this package touches the form directly.
type Session struct {
	ID     string
	UserID uint

	mu        sync.Mutex
	step      int
	form      Form
	generated map[Kind][]string
	loading   map[Kind]bool
	submitting bool
	lastSeen  time.Time
}

func newSession(id string, userID uint) *Session {
	return &Session{
		ID:     id,
		UserID: userID,
		step:   StepCareer,
		form: Form{
			Interests: []string{},
			Skills:    []string{},
		},
		generated: map[Kind][]string{},
		loading:   map[Kind]bool{},
		lastSeen:  time.Now(),
	}
}

// State is the read-only snapshot handlers serialize.
type State struct {
	ID           string   `json:"id"`
	Step         int      `json:"step"`
	Form         Form     `json:"form"`
	GeneratedInterests []string `json:"generatedInterests"`
	GeneratedSkills    []string `json:"generatedSkills"`
	AllInterestsSelected bool `json:"allInterestsSelected"`
	AllSkillsSelected    bool `json:"allSkillsSelected"`
	CanNext      bool     `json:"canNext"`
	Submitting   bool     `json:"submitting"`
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:                   s.ID,
		Step:                 s.step,
		Form:                 s.form,
		GeneratedInterests:   append([]string{}, s.generated[KindInterests]...),
		GeneratedSkills:      append([]string{}, s.generated[KindSkills]...),
		AllInterestsSelected: allSelected(s.generated[KindInterests], s.form.Interests),
		AllSkillsSelected:    allSelected(s.generated[KindSkills], s.form.Skills),
		CanNext:              s.form.stepValid(s.step),
		Submitting:           s.submitting,
	}
}

// Form returns a copy of the current form.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.form
	f.Interests = append([]string{}, s.form.Interests...)
	f.Skills = append([]string{}, s.form.Skills...)
	return f
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) touch() { s.lastSeen = time.Now() }

// Next advances one step if the current step's gate holds. The final step
// is reachable only through submission, never through Next.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step >= StepReview {
		return ErrNotReview
	}
	if !s.form.stepValid(s.step) {
		return ErrStepInvalid
	}
	s.step++
	return nil
}

// Back moves one step toward the start and is always permitted.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step > StepCareer {
		s.step--
	}
}

// Jump serves the review screen's edit affordance: from review only, back
// into steps 2-4. Re-editing an already valid step needs no gate.
func (s *Session) Jump(step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step != StepReview || step < StepCollege || step > StepSkills {
		return ErrBadJump
	}
	s.step = step
	return nil
}

func (s *Session) SetTypedCareer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.setTypedCareer(text)
}

func (s *Session) SetSelectedCareer(name, id, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.setSelectedCareer(name, id, code)
}

func (s *Session) SetCollege(college string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.setCollege(college)
}

func (s *Session) SetProgram(program string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.Program = program
}

// Toggle flips one generated label's selection.
func (s *Session) Toggle(kind Kind, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if !contains(s.generated[kind], label) {
		return ErrUnknownLabel
	}
	s.form.setLabels(kind, toggle(s.form.labels(kind), label))
	return nil
}

// SelectAll toggles between the full generated set and nothing.
func (s *Session) SelectAll(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.setLabels(kind, selectAll(s.generated[kind], s.form.labels(kind)))
}

// BeginGenerate reserves the step for one generation call and returns the
// inputs the generator needs. ErrAllSelected mirrors the disabled
// regenerate control: with everything selected a call would be a no-op.
func (s *Session) BeginGenerate(kind Kind) (form Form, previous, selected []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.loading[kind] {
		return Form{}, nil, nil, ErrGenerating
	}
	gen := s.generated[kind]
	if allSelected(gen, s.form.labels(kind)) {
		return Form{}, nil, nil, ErrAllSelected
	}
	s.loading[kind] = true
	form = s.form
	previous = append([]string{}, gen...)
	selected = append([]string{}, s.form.labels(kind)...)
	return form, previous, selected, nil
}

// FinishGenerate installs the generator's result: the new generated set
// replaces the old one, and the selection is reduced to the labels that
// were already selected (they are always part of the result).
func (s *Session) FinishGenerate(kind Kind, labels []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.loading[kind] = false
	s.generated[kind] = append([]string{}, labels...)
	kept := []string{}
	for _, l := range s.form.labels(kind) {
		if contains(labels, l) {
			kept = append(kept, l)
		}
	}
	s.form.setLabels(kind, kept)
}

// AbortGenerate releases the loading flag without touching state.
func (s *Session) AbortGenerate(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[kind] = false
}

// BeginSubmit reserves the single in-flight submission slot and returns the
// form to persist. Allowed only from the review step.
func (s *Session) BeginSubmit() (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step == StepDone {
		return Form{}, ErrAlreadyDone
	}
	if s.step != StepReview {
		return Form{}, ErrNotReview
	}
	if s.submitting {
		return Form{}, ErrSubmitting
	}
	s.submitting = true
	f := s.form
	f.Interests = append([]string{}, s.form.Interests...)
	f.Skills = append([]string{}, s.form.Skills...)
	return f, nil
}

// FinishSubmit settles the in-flight submission. Only success advances the
// wizard; a failed save leaves the step unchanged so the user can retry.
func (s *Session) FinishSubmit(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.submitting = false
	if ok {
		s.step = StepDone
	}
}
