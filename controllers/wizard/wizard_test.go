package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-pathways-backend/models/catalog"
	"career-pathways-backend/models/profile"
	"career-pathways-backend/services"
	wiz "career-pathways-backend/wizard"
)

type stubStore struct {
	err     error
	created int
}

func (s *stubStore) Create(p *profile.StudentProfile) error {
	if s.err != nil {
		return s.err
	}
	s.created++
	p.ID = uint(s.created)
	return nil
}

func (s *stubStore) ListByUser(uint) ([]profile.StudentProfile, error) { return nil, nil }

type stubPathways struct{ list []catalog.Pathway }

func (s *stubPathways) Pathways() ([]catalog.Pathway, error) { return s.list, nil }

type stubPrograms struct{}

func (stubPrograms) ProgramsForCollege(string) ([]string, error) {
	return []string{"BA Economics"}, nil
}

func newTestRig(store services.ProfileStore, pathways services.PathwayLister) (*services.WizardService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	svc := services.NewWizardService(
		wiz.NewStore(time.Minute),
		services.NewSuggestionGenerator(""),
		stubPrograms{},
		services.NewProfileSubmitter(store, services.NewRoadmapService(pathways)),
	)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("userID", uint(1)) })
	NewHandler(svc).Register(router.Group("/api"))
	return svc, router
}

func reviewSession(t *testing.T, svc *services.WizardService) *wiz.Session {
	t.Helper()
	sess := svc.Sessions.Create(1)
	sess.SetSelectedCareer("Economist", "t-19", "19-3011")
	require.NoError(t, sess.Next())
	sess.SetCollege("UH Manoa")
	require.NoError(t, svc.SetProgram(sess, "BA Economics"))
	require.NoError(t, sess.Next())
	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wiz.KindInterests))
	require.NoError(t, sess.Toggle(wiz.KindInterests, "Innovation"))
	require.NoError(t, sess.Next())
	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wiz.KindSkills))
	require.NoError(t, sess.Toggle(wiz.KindSkills, "Teamwork"))
	require.NoError(t, sess.Next())
	return sess
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitMapsFullSuccess(t *testing.T) {
	store := &stubStore{}
	svc, router := newTestRig(store, &stubPathways{list: []catalog.Pathway{
		{ProgramName: "BA Economics", Institution: "UH Manoa", PathwayData: `{"years":[]}`},
	}})
	sess := reviewSession(t, svc)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, true, resp["hasRoadmap"])
	assert.NotContains(t, resp, "roadmapError")
	assert.Equal(t, wiz.StepDone, sess.Step())
	assert.Equal(t, 1, store.created)
}

func TestSubmitMapsPartialSuccess(t *testing.T) {
	store := &stubStore{}
	svc, router := newTestRig(store, &stubPathways{})
	sess := reviewSession(t, svc)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["hasRoadmap"])
	assert.Equal(t, services.ErrNoRoadmapTemplate, resp["roadmapError"])
	// the profile was saved, so the wizard still completes
	assert.Equal(t, wiz.StepDone, sess.Step())
}

func TestSubmitMapsStoreFailureToBlockingError(t *testing.T) {
	store := &stubStore{err: errors.New("insert failed")}
	svc, router := newTestRig(store, &stubPathways{})
	sess := reviewSession(t, svc)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/submit", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to save, try again")
	assert.Equal(t, wiz.StepReview, sess.Step())
}

func TestNextRejectedWhileStepInvalid(t *testing.T) {
	svc, router := newTestRig(&stubStore{}, &stubPathways{})
	sess := svc.Sessions.Create(1)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/next", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, wiz.StepCareer, sess.Step())

	// a validated career opens the gate
	body := `{"selected":{"id":"t-19","code":"19-3011","name":"Economist"}}`
	w = do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/career", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/next", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wiz.StepCollege, sess.Step())
}

func TestTypedCareerClearsValidationOverHTTP(t *testing.T) {
	svc, router := newTestRig(&stubStore{}, &stubPathways{})
	sess := svc.Sessions.Create(1)

	do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/career",
		`{"selected":{"id":"t-19","code":"19-3011","name":"Economist"}}`)
	require.True(t, sess.Form().CareerValidated)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/career", `{"typed":"Economist x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	form := sess.Form()
	assert.False(t, form.CareerValidated)
	assert.Empty(t, form.CareerID)
}

func TestUnknownSessionIs404(t *testing.T) {
	_, router := newTestRig(&stubStore{}, &stubPathways{})
	w := do(router, http.MethodPost, "/api/wizard/nope/next", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegenerateConflictWhenAllSelected(t *testing.T) {
	svc, router := newTestRig(&stubStore{}, &stubPathways{})
	sess := svc.Sessions.Create(1)
	require.NoError(t, svc.GenerateLabels(context.Background(), sess, wiz.KindInterests))
	sess.SelectAll(wiz.KindInterests)

	w := do(router, http.MethodPost, "/api/wizard/"+sess.ID+"/labels/interests/generate", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "deselect some to regenerate")
}
