package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-pathways-backend/services"
)

// Handler serves the public catalog surface: campuses, the roadmap catalog
// with its browser filters, per-campus courses and the career-title
// autocomplete proxy.
type Handler struct {
	catalog *services.CatalogService
	titles  *services.TitleClient
}

func NewHandler(catalog *services.CatalogService, titles *services.TitleClient) *Handler {
	return &Handler{catalog: catalog, titles: titles}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/campuses", h.Campuses)
	r.GET("/pathways", h.Pathways)
	r.GET("/pathways/programs", h.Programs)
	r.GET("/courses", h.Courses)
	r.GET("/titles/autocomplete", h.TitleAutocomplete)
}

func (h *Handler) Campuses(c *gin.Context) {
	campuses, err := h.catalog.Campuses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching campuses"})
		return
	}
	c.JSON(http.StatusOK, campuses)
}

// Pathways returns the catalog, filtered and sorted server-side with the
// browser's query params. With no params it is the full list.
func (h *Handler) Pathways(c *gin.Context) {
	list, err := h.catalog.Pathways()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching pathways"})
		return
	}
	query := services.CatalogQuery{
		Search:      c.Query("search"),
		Institution: c.Query("institution"),
		Credits:     c.Query("credits"),
		Degree:      c.Query("degree"),
		SortBy:      c.Query("sortBy"),
		SortDir:     c.Query("sortDir"),
	}
	c.JSON(http.StatusOK, services.FilterPathways(list, query))
}

// Programs derives the program list for a college, the wizard's step 2
// source.
func (h *Handler) Programs(c *gin.Context) {
	college := c.Query("college")
	if college == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "college query parameter required"})
		return
	}
	programs, err := h.catalog.ProgramsForCollege(college)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching programs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": college, "programs": programs})
}

func (h *Handler) Courses(c *gin.Context) {
	campus := c.Query("campus")
	if campus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campus query parameter required"})
		return
	}
	courses, err := h.catalog.CoursesByCampus(campus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching courses"})
		return
	}
	c.JSON(http.StatusOK, courses)
}

// TitleAutocomplete proxies the taxonomy search. Failures come back as an
// empty list so the typing UI never blocks on this endpoint.
func (h *Handler) TitleAutocomplete(c *gin.Context) {
	q := c.Query("q")
	if len([]rune(q)) < 2 {
		c.JSON(http.StatusOK, []services.Title{})
		return
	}
	titles, err := h.titles.Search(c.Request.Context(), q)
	if err != nil {
		// context cancelled by the client; nothing to send
		return
	}
	c.JSON(http.StatusOK, titles)
}
