package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-pathways-backend/models/profile"
	"career-pathways-backend/services"
	"career-pathways-backend/wizard"
)

// Handler exposes profile persistence directly, mirroring what the wizard's
// submit step does through its session.
type Handler struct {
	submitter *services.ProfileSubmitter
	store     services.ProfileStore
}

func NewHandler(submitter *services.ProfileSubmitter, store services.ProfileStore) *Handler {
	return &Handler{submitter: submitter, store: store}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/profiles", h.Create)
	r.GET("/profiles", h.List)
}

type createInput struct {
	Career    string   `json:"career" binding:"required"`
	College   string   `json:"college" binding:"required"`
	Program   string   `json:"program" binding:"required"`
	Interests []string `json:"interests" binding:"required"`
	Skills    []string `json:"skills" binding:"required"`
}

// Create persists a profile and reports the roadmap outcome. hasRoadmap
// false with a roadmapError is a partial success, not a failure.
func (h *Handler) Create(c *gin.Context) {
	var input createInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	form := wizard.Form{
		Career:          input.Career,
		CareerValidated: true,
		College:         input.College,
		Program:         input.Program,
		Interests:       input.Interests,
		Skills:          input.Skills,
	}
	result, err := h.submitter.Submit(c.GetUint("userID"), form)
	if err == services.ErrIncompleteForm {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save, try again"})
		return
	}

	resp := gin.H{
		"success":    true,
		"profile":    result.Profile.ToView(),
		"hasRoadmap": result.HasRoadmap,
	}
	if result.RoadmapError != "" {
		resp["roadmapError"] = result.RoadmapError
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListByUser(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profiles"})
		return
	}
	views := make([]profile.View, 0, len(list))
	for i := range list {
		views = append(views, list[i].ToView())
	}
	c.JSON(http.StatusOK, views)
}
