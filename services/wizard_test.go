package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-pathways-backend/models/catalog"
	"career-pathways-backend/models/profile"
	"career-pathways-backend/wizard"
)

type fakeProfileStore struct {
	created []profile.StudentProfile
	err     error
}

func (f *fakeProfileStore) Create(p *profile.StudentProfile) error {
	if f.err != nil {
		return f.err
	}
	p.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *p)
	return nil
}

func (f *fakeProfileStore) ListByUser(userID uint) ([]profile.StudentProfile, error) {
	var out []profile.StudentProfile
	for _, p := range f.created {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePrograms struct {
	programs map[string][]string
}

func (f *fakePrograms) ProgramsForCollege(college string) ([]string, error) {
	return f.programs[college], nil
}

func newTestWizardService(store ProfileStore, pathways PathwayLister) *WizardService {
	generator := NewSuggestionGenerator("") // no key: deterministic fallback labels
	return NewWizardService(
		wizard.NewStore(time.Minute),
		generator,
		&fakePrograms{programs: map[string][]string{
			"UH Manoa": {"BA Economics", "BS Computer Science"},
		}},
		NewProfileSubmitter(store, NewRoadmapService(pathways)),
	)
}

func economicsTemplate() PathwayLister {
	return &fakePathways{list: []catalog.Pathway{
		{ProgramName: "BA Economics", Institution: "UH Manoa", TotalCredits: "120", PathwayData: `{"years":[]}`},
	}}
}

// driveToReview walks a fresh session through steps 1-4.
func driveToReview(t *testing.T, svc *WizardService) *wizard.Session {
	t.Helper()
	sess := svc.Sessions.Create(1)

	sess.SetSelectedCareer("Economist", "t-19", "19-3011")
	require.NoError(t, sess.Next())

	sess.SetCollege("UH Manoa")
	require.NoError(t, svc.SetProgram(sess, "BA Economics"))
	require.NoError(t, sess.Next())

	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wizard.KindInterests))
	require.NoError(t, sess.Toggle(wizard.KindInterests, "Innovation"))
	require.NoError(t, sess.Next())

	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wizard.KindSkills))
	require.NoError(t, sess.Toggle(wizard.KindSkills, "Teamwork"))
	require.NoError(t, sess.Next())

	require.Equal(t, wizard.StepReview, sess.Step())
	return sess
}

func TestGenerateLabelsPopulatesFiveAndKeepsSelection(t *testing.T) {
	svc := newTestWizardService(&fakeProfileStore{}, economicsTemplate())
	sess := svc.Sessions.Create(1)
	sess.SetSelectedCareer("Economist", "t-19", "19-3011")

	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wizard.KindInterests))
	state := sess.Snapshot()
	assert.Len(t, state.GeneratedInterests, 5)
	assert.Empty(t, state.Form.Interests)

	// select two, regenerate: selection survives at the front of the set.
	// The fallback generator overlaps the selection here, so the budget
	// labels that would duplicate it are dropped rather than repeated.
	require.NoError(t, sess.Toggle(wizard.KindInterests, "Innovation"))
	require.NoError(t, sess.Toggle(wizard.KindInterests, "Leadership"))
	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wizard.KindInterests))

	state = sess.Snapshot()
	assert.Equal(t, []string{"Innovation", "Leadership", "Problem Solving"}, state.GeneratedInterests)
	assert.ElementsMatch(t, []string{"Innovation", "Leadership"}, state.Form.Interests)
}

func TestGenerateLabelsRejectedWhenAllSelected(t *testing.T) {
	svc := newTestWizardService(&fakeProfileStore{}, economicsTemplate())
	sess := svc.Sessions.Create(1)
	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wizard.KindSkills))
	sess.SelectAll(wizard.KindSkills)

	err := svc.GenerateLabels(context.Background(), sess, wizard.KindSkills)
	assert.ErrorIs(t, err, wizard.ErrAllSelected)
}

func TestSetProgramValidatesAgainstCollegeList(t *testing.T) {
	svc := newTestWizardService(&fakeProfileStore{}, economicsTemplate())
	sess := svc.Sessions.Create(1)

	assert.ErrorIs(t, svc.SetProgram(sess, "BA Economics"), ErrNoCollege)

	sess.SetCollege("UH Manoa")
	assert.ErrorIs(t, svc.SetProgram(sess, "BS Nursing"), ErrUnknownProgram)
	assert.NoError(t, svc.SetProgram(sess, "BA Economics"))
	assert.Equal(t, "BA Economics", sess.Form().Program)
}

func TestSubmitSuccessWithRoadmap(t *testing.T) {
	store := &fakeProfileStore{}
	svc := newTestWizardService(store, economicsTemplate())
	sess := driveToReview(t, svc)

	result, err := svc.Submit(sess, 1)
	require.NoError(t, err)
	assert.True(t, result.HasRoadmap)
	assert.Empty(t, result.RoadmapError)
	assert.Equal(t, wizard.StepDone, sess.Step())

	require.Len(t, store.created, 1)
	saved := store.created[0]
	assert.Equal(t, "Economist", saved.Career)
	assert.True(t, saved.HasRoadmap)
	assert.NotEmpty(t, saved.UID)

	var interests []string
	require.NoError(t, json.Unmarshal([]byte(saved.Interests), &interests))
	assert.Equal(t, []string{"Innovation"}, interests)
}

func TestSubmitWithoutTemplateIsPartialSuccess(t *testing.T) {
	store := &fakeProfileStore{}
	svc := newTestWizardService(store, &fakePathways{})
	sess := driveToReview(t, svc)

	result, err := svc.Submit(sess, 1)
	require.NoError(t, err)
	assert.False(t, result.HasRoadmap)
	assert.Equal(t, ErrNoRoadmapTemplate, result.RoadmapError)
	// the profile itself was still saved and the wizard completes
	require.Len(t, store.created, 1)
	assert.False(t, store.created[0].HasRoadmap)
	assert.Equal(t, wizard.StepDone, sess.Step())
}

func TestSubmitStoreFailureKeepsWizardOnReview(t *testing.T) {
	store := &fakeProfileStore{err: errors.New("insert failed")}
	svc := newTestWizardService(store, economicsTemplate())
	sess := driveToReview(t, svc)

	_, err := svc.Submit(sess, 1)
	require.Error(t, err)
	assert.Equal(t, wizard.StepReview, sess.Step())

	// the user can retry manually after the failure
	store.err = nil
	_, err = svc.Submit(sess, 1)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepDone, sess.Step())
}

func TestSubmitIncompleteFormRejected(t *testing.T) {
	store := &fakeProfileStore{}
	submitter := NewProfileSubmitter(store, NewRoadmapService(economicsTemplate()))

	form := validForm()
	form.Skills = nil
	_, err := submitter.Submit(1, form)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	assert.Empty(t, store.created)
}
