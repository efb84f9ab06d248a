package allergy

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guarderia/internal/faults"
)

type Handler struct {
	service   *Service
	validator *Validator
}

func NewHandler(service *Service, validator *Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		ChildID      int `json:"child_id"`
		IngredientID int `json:"ingredient_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.service.Register(c.Request.Context(), req.ChildID, req.IngredientID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Unregister(c *gin.Context) {
	childID, err := strconv.Atoi(c.Param("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}
	ingredientID, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
		return
	}

	if err := h.service.Unregister(c.Request.Context(), childID, ingredientID); err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListForChild(c *gin.Context) {
	childID, err := strconv.Atoi(c.Param("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}

	records, err := h.service.ListForChild(c.Request.Context(), childID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Check answers a safety query for a child against a menu or dish.
func (h *Handler) Check(c *gin.Context) {
	childID, err := strconv.Atoi(c.Query("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "child_id is required"})
		return
	}

	ctx := c.Request.Context()

	if menuParam := c.Query("menu_id"); menuParam != "" {
		menuID, err := strconv.Atoi(menuParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu_id"})
			return
		}
		safe, err := h.validator.IsSafeMenu(ctx, childID, menuID)
		if err != nil {
			c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		unsafe, _ := h.validator.UnsafeIngredientsForMenu(ctx, childID, menuID)
		c.JSON(http.StatusOK, gin.H{"safe": safe, "unsafe_ingredients": unsafe})
		return
	}

	if dishParam := c.Query("dish_id"); dishParam != "" {
		dishID, err := strconv.Atoi(dishParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish_id"})
			return
		}
		safe, err := h.validator.IsSafeDish(ctx, childID, dishID)
		if err != nil {
			c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		unsafe, _ := h.validator.UnsafeIngredientsForDish(ctx, childID, dishID)
		c.JSON(http.StatusOK, gin.H{"safe": safe, "unsafe_ingredients": unsafe})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "menu_id or dish_id is required"})
}
