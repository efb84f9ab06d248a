package attendance

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

func (h *Handler) Record(c *gin.Context) {
	var req struct {
		ChildID  int    `json:"child_id"`
		Day      string `json:"day"`
		Attended bool   `json:"attended"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day, use YYYY-MM-DD"})
		return
	}

	rec, err := h.service.Record(c.Request.Context(), req.ChildID, day, req.Attended)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ListMonth(c *gin.Context) {
	childID, err := strconv.Atoi(c.Param("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	records, err := h.service.ListMonth(c.Request.Context(), childID, month, year)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
