package billing

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

func (h *Handler) Generate(c *gin.Context) {
	var req struct {
		ChildID int `json:"child_id"`
		Month   int `json:"month"`
		Year    int `json:"year"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	charge, err := h.service.Generate(c.Request.Context(), req.ChildID, req.Month, req.Year)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, charge)
}

func (h *Handler) BulkGenerate(c *gin.Context) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	charges, err := h.service.BulkGenerate(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		if faults.Is(err, faults.Validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// partial progress: report generated charges alongside failures
		c.JSON(http.StatusMultiStatus, gin.H{
			"generated": charges,
			"errors":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"generated": charges})
}

func (h *Handler) Recalculate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	charge, err := h.service.Recalculate(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		PaidDate string `json:"paid_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	paid, err := time.Parse("2006-01-02", req.PaidDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid_date, use YYYY-MM-DD"})
		return
	}

	charge, err := h.service.MarkPaid(c.Request.Context(), id, paid)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *Handler) MarkPending(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	charge, err := h.service.MarkPending(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	charge, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *Handler) ListForChild(c *gin.Context) {
	childID, err := strconv.Atoi(c.Param("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}

	charges, err := h.service.ListForChild(c.Request.Context(), childID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charges)
}
