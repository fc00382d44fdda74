package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/services"
	"github.com/reviewlens/backend/pkg/response"
)

// ReviewHandler serves stored reviews.
type ReviewHandler struct {
	store *services.ReviewStore
}

func NewReviewHandler(store *services.ReviewStore) *ReviewHandler {
	return &ReviewHandler{store: store}
}

// parseID extracts the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, response.NewBadRequest("invalid review id")
	}
	return uint(id), nil
}

// List handles GET /api/reviews with optional limit/min_score/max_score/language filters.
func (h *ReviewHandler) List(c *gin.Context) {
	var filter services.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, response.NewBadRequest("invalid query parameters"))
		return
	}

	reviews, err := h.store.ListFiltered(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.store.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, review)
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.store.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// DeleteAll handles DELETE /api/reviews and reports how many rows went away.
func (h *ReviewHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.store.DeleteAll()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// Search handles GET /api/reviews/search?q=...
func (h *ReviewHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, response.NewBadRequest("query parameter q is required"))
		return
	}

	reviews, err := h.store.Search(q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
		"query":   q,
	})
}

// Export handles GET /api/reviews/:id/export, returning the full review as
// a downloadable JSON document.
func (h *ReviewHandler) Export(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.store.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="review_%d.json"`, review.ID))
	c.JSON(http.StatusOK, gin.H{
		"review":      review,
		"exported_at": time.Now().UTC().Format(time.RFC3339),
	})
}
