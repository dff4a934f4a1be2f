package wizard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-pathways-backend/services"
	wiz "career-pathways-backend/wizard"
)

// Handler exposes the wizard session lifecycle over HTTP. Every endpoint
// operates on a session owned by the authenticated user.
type Handler struct {
	svc *services.WizardService
}

func NewHandler(svc *services.WizardService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/wizard", h.Create)
	r.GET("/wizard/:id", h.Get)
	r.DELETE("/wizard/:id", h.Delete)
	r.POST("/wizard/:id/career", h.SetCareer)
	r.POST("/wizard/:id/college", h.SetCollege)
	r.POST("/wizard/:id/program", h.SetProgram)
	r.POST("/wizard/:id/labels/:kind/generate", h.Generate)
	r.POST("/wizard/:id/labels/:kind/toggle", h.Toggle)
	r.POST("/wizard/:id/labels/:kind/select-all", h.SelectAll)
	r.POST("/wizard/:id/next", h.Next)
	r.POST("/wizard/:id/back", h.Back)
	r.POST("/wizard/:id/jump", h.Jump)
	r.POST("/wizard/:id/submit", h.Submit)
}

func (h *Handler) Create(c *gin.Context) {
	sess := h.svc.Sessions.Create(c.GetUint("userID"))
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *Handler) Get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Delete(c *gin.Context) {
	h.svc.Sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type careerInput struct {
	Typed    *string `json:"typed"`
	Selected *struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"selected"`
}

// SetCareer records either a free-typed career (which clears any earlier
// validation) or an autocomplete pick (which validates atomically).
func (h *Handler) SetCareer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var input careerInput
	if err := c.ShouldBindJSON(&input); err != nil || (input.Typed == nil) == (input.Selected == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of typed or selected"})
		return
	}
	if input.Typed != nil {
		sess.SetTypedCareer(*input.Typed)
	} else {
		sess.SetSelectedCareer(input.Selected.Name, input.Selected.ID, input.Selected.Code)
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) SetCollege(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var input struct {
		College string `json:"college" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	sess.SetCollege(input.College)
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) SetProgram(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var input struct {
		Program string `json:"program" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.svc.SetProgram(sess, input.Program); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Generate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	if err := h.svc.GenerateLabels(c.Request.Context(), sess, kind); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Toggle(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var input struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := sess.Toggle(kind, input.Label); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) SelectAll(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	sess.SelectAll(kind)
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Next(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.Next(); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Back(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Back()
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Jump(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var input struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := sess.Jump(input.Step); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// Submit persists the form. A 201 carries the roadmap outcome; a failed
// save is a hard error and the session stays on review.
func (h *Handler) Submit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	result, err := h.svc.Submit(sess, c.GetUint("userID"))
	if err != nil {
		if isWizardError(err) {
			respondWizardError(c, err)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save, try again"})
		}
		return
	}
	resp := gin.H{
		"success":    true,
		"profile":    result.Profile.ToView(),
		"hasRoadmap": result.HasRoadmap,
		"state":      sess.Snapshot(),
	}
	if result.RoadmapError != "" {
		resp["roadmapError"] = result.RoadmapError
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) session(c *gin.Context) (*wiz.Session, bool) {
	sess, err := h.svc.Sessions.Get(c.Param("id"), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return nil, false
	}
	return sess, true
}

func parseKind(c *gin.Context) (wiz.Kind, bool) {
	switch c.Param("kind") {
	case "interests":
		return wiz.KindInterests, true
	case "skills":
		return wiz.KindSkills, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown label kind"})
		return "", false
	}
}

func respondWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wiz.ErrStepInvalid),
		errors.Is(err, wiz.ErrBadJump),
		errors.Is(err, wiz.ErrNotReview),
		errors.Is(err, wiz.ErrAlreadyDone),
		errors.Is(err, services.ErrIncompleteForm):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, wiz.ErrGenerating),
		errors.Is(err, wiz.ErrSubmitting),
		errors.Is(err, wiz.ErrAllSelected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, wiz.ErrUnknownLabel),
		errors.Is(err, services.ErrNoCollege),
		errors.Is(err, services.ErrUnknownProgram):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func isWizardError(err error) bool {
	for _, known := range []error{
		wiz.ErrStepInvalid, wiz.ErrBadJump, wiz.ErrNotReview, wiz.ErrAlreadyDone,
		wiz.ErrGenerating, wiz.ErrSubmitting, wiz.ErrAllSelected, wiz.ErrUnknownLabel,
		services.ErrIncompleteForm, services.ErrNoCollege, services.ErrUnknownProgram,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
