package community

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"career-pathways-backend/models/community"
	"career-pathways-backend/services"
)

// Handler serves internships and notable alumni. Reads are public; writes
// sit behind auth in the router.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterPublic(r gin.IRoutes) {
	r.GET("/internships", h.ListInternships)
	r.GET("/alumni", h.ListAlumni)
}

func (h *Handler) RegisterAuthed(r gin.IRoutes) {
	r.POST("/internships", h.CreateInternship)
	r.POST("/alumni", h.CreateAlumnus)
}

func (h *Handler) ListInternships(c *gin.Context) {
	query := h.db.Order("created_at desc")
	if field := c.Query("field"); field != "" {
		query = query.Where("field = ?", field)
	}
	var list []community.Internship
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching internships"})
		return
	}
	if search := services.Normalize(c.Query("search")); search != "" {
		filtered := list[:0]
		for _, i := range list {
			if containsNormalized(search, i.Title, i.Company, i.Field) {
				filtered = append(filtered, i)
			}
		}
		list = filtered
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateInternship(c *gin.Context) {
	var internship community.Internship
	if err := c.ShouldBindJSON(&internship); err != nil || internship.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	internship.ID = 0
	if err := h.db.Create(&internship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating internship"})
		return
	}
	c.JSON(http.StatusCreated, internship)
}

func (h *Handler) ListAlumni(c *gin.Context) {
	query := h.db.Order("grad_year desc")
	if campus := c.Query("campus"); campus != "" {
		query = query.Where("campus = ?", campus)
	}
	var list []community.Alumnus
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching alumni"})
		return
	}
	if search := services.Normalize(c.Query("search")); search != "" {
		filtered := list[:0]
		for _, a := range list {
			if containsNormalized(search, a.Name, a.Major, a.Career) {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateAlumnus(c *gin.Context) {
	var alumnus community.Alumnus
	if err := c.ShouldBindJSON(&alumnus); err != nil || alumnus.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	alumnus.ID = 0
	if err := h.db.Create(&alumnus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating alumnus"})
		return
	}
	c.JSON(http.StatusCreated, alumnus)
}

func containsNormalized(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(services.Normalize(f), search) {
			return true
		}
	}
	return false
}
