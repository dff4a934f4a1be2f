package services

import (
	"context"
	"errors"

	"career-pathways-backend/wizard"
)

var (
	ErrNoCollege      = errors.New("select a college first")
	ErrUnknownProgram = errors.New("program does not belong to the selected college")
)

// ProgramLister derives the program list for a college.
type ProgramLister interface {
	ProgramsForCollege(college string) ([]string, error)
}

// WizardService drives wizard sessions against the generator, catalog and
// profile persistence. Handlers stay thin over it.
type WizardService struct {
	Sessions  *wizard.Store
	Generator *SuggestionGenerator
	Catalog   ProgramLister
	Submitter *ProfileSubmitter
}

func NewWizardService(sessions *wizard.Store, gen *SuggestionGenerator, cat ProgramLister, sub *ProfileSubmitter) *WizardService {
	return &WizardService{Sessions: sessions, Generator: gen, Catalog: cat, Submitter: sub}
}

// GenerateLabels runs one interests/skills generation for the session. The
// per-step loading flag serializes calls; ErrAllSelected and ErrGenerating
// surface as conflicts to the handler.
func (s *WizardService) GenerateLabels(ctx context.Context, sess *wizard.Session, kind wizard.Kind) error {
	form, previous, selected, err := sess.BeginGenerate(kind)
	if err != nil {
		return err
	}

	req := SuggestionRequest{
		Kind:     kind,
		Career:   form.Career,
		College:  form.College,
		Program:  form.Program,
		Previous: previous,
		Selected: selected,
	}
	if kind == wizard.KindSkills {
		req.Interests = form.Interests
	}

	labels := s.Generator.Generate(ctx, req)
	sess.FinishGenerate(kind, labels)
	return nil
}

// SetProgram validates the choice against the derived program list for the
// session's current college before recording it.
func (s *WizardService) SetProgram(sess *wizard.Session, program string) error {
	form := sess.Form()
	if form.College == "" {
		return ErrNoCollege
	}
	programs, err := s.Catalog.ProgramsForCollege(form.College)
	if err != nil {
		return err
	}
	for _, p := range programs {
		if p == program {
			sess.SetProgram(program)
			return nil
		}
	}
	return ErrUnknownProgram
}

// Submit persists the session's form exactly once. Only a successful save
// advances the wizard to its terminal step; failure leaves it on review so
// the user can retry.
func (s *WizardService) Submit(sess *wizard.Session, userID uint) (SubmitResult, error) {
	form, err := sess.BeginSubmit()
	if err != nil {
		return SubmitResult{}, err
	}
	result, err := s.Submitter.Submit(userID, form)
	sess.FinishSubmit(err == nil)
	return result, err
}
