package suggestions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-pathways-backend/services"
	"career-pathways-backend/wizard"
)

// Handler exposes interest and skill generation directly, for clients that
// drive the wizard form themselves. The generator's fallback policy means
// these endpoints always answer 200 with a label list.
type Handler struct {
	generator *services.SuggestionGenerator
}

func NewHandler(generator *services.SuggestionGenerator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/interests/generate", h.GenerateInterests)
	r.POST("/skills/generate", h.GenerateSkills)
}

type interestsInput struct {
	Career            string   `json:"career" binding:"required"`
	College           string   `json:"college"`
	Program           string   `json:"program"`
	PreviousInterests []string `json:"previousInterests"`
	SelectedInterests []string `json:"selectedInterests"`
}

func (h *Handler) GenerateInterests(c *gin.Context) {
	var input interestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	labels := h.generator.Generate(c.Request.Context(), services.SuggestionRequest{
		Kind:     wizard.KindInterests,
		Career:   input.Career,
		College:  input.College,
		Program:  input.Program,
		Previous: input.PreviousInterests,
		Selected: input.SelectedInterests,
	})
	c.JSON(http.StatusOK, gin.H{"interests": labels})
}

type skillsInput struct {
	Career         string   `json:"career" binding:"required"`
	College        string   `json:"college"`
	Program        string   `json:"program"`
	Interests      []string `json:"interests"`
	PreviousSkills []string `json:"previousSkills"`
	SelectedSkills []string `json:"selectedSkills"`
}

func (h *Handler) GenerateSkills(c *gin.Context) {
	var input skillsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	labels := h.generator.Generate(c.Request.Context(), services.SuggestionRequest{
		Kind:      wizard.KindSkills,
		Career:    input.Career,
		College:   input.College,
		Program:   input.Program,
		Interests: input.Interests,
		Previous:  input.PreviousSkills,
		Selected:  input.SelectedSkills,
	})
	c.JSON(http.StatusOK, gin.H{"skills": labels})
}
