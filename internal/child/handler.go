package child

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guarderia/internal/faults"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const dateLayout = "2006-01-02"

// --------------------------------------------------
// Payers
// --------------------------------------------------
func (h *Handler) CreatePayer(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payer, err := h.service.CreatePayer(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, payer)
}

func (h *Handler) ListPayers(c *gin.Context) {
	payers, err := h.service.ListPayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payers)
}

// --------------------------------------------------
// Children
// --------------------------------------------------
func (h *Handler) Enroll(c *gin.Context) {
	var req struct {
		Name           string `json:"name"`
		BirthDate      string `json:"birth_date"`
		EnrollmentDate string `json:"enrollment_date"`
		PayerID        *int   `json:"payer_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	born, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date, use YYYY-MM-DD"})
		return
	}
	enrolled, err := time.Parse(dateLayout, req.EnrollmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment_date, use YYYY-MM-DD"})
		return
	}

	child, err := h.service.Enroll(c.Request.Context(), req.Name, born, enrolled, req.PayerID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, child)
}

func (h *Handler) List(c *gin.Context) {
	children, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, children)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	child, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, child)
}

func (h *Handler) AssignPayer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	var req struct {
		PayerID int `json:"payer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	child, err := h.service.AssignPayer(c.Request.Context(), id, req.PayerID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, child)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	child, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, child)
}
