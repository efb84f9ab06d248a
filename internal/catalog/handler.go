package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guarderia/internal/faults"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// --------------------------------------------------
// Ingredients
// --------------------------------------------------
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsAllergen  bool   `json:"is_allergen"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.CreateIngredient(c.Request.Context(), req.Name, req.Description, req.IsAllergen)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ing, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *Handler) GetIngredientByName(c *gin.Context) {
	name := c.Query("name")

	ing, err := h.service.IngredientByName(c.Request.Context(), name)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.service.ListIngredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsAllergen  bool   `json:"is_allergen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.UpdateIngredient(c.Request.Context(), id, req.Name, req.Description, req.IsAllergen)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteIngredient(c.Request.Context(), id); err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------
func (h *Handler) CreateDish(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Ingredients []struct {
			IngredientID int    `json:"ingredient_id"`
			Portion      string `json:"portion"`
		} `json:"ingredients"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ingredients := make([]DishIngredient, 0, len(req.Ingredients))
	for _, di := range req.Ingredients {
		ingredients = append(ingredients, DishIngredient{
			IngredientID: di.IngredientID,
			Portion:      di.Portion,
		})
	}

	dish, err := h.service.CreateDish(c.Request.Context(), req.Name, req.Type, ingredients)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (h *Handler) GetDish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	dish, err := h.service.GetDish(c.Request.Context(), id)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (h *Handler) ListDishes(c *gin.Context) {
	dishes, err := h.service.ListDishes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *Handler) AddDishIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		IngredientID int    `json:"ingredient_id"`
		Portion      string `json:"portion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.AddIngredientToDish(c.Request.Context(), id, req.IngredientID, req.Portion); err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveDishIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(c, "ingredient_id")
	if !ok {
		return
	}

	if err := h.service.RemoveIngredientFromDish(c.Request.Context(), id, ingredientID); err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
