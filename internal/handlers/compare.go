package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/services"
	"github.com/reviewlens/backend/pkg/response"
)

// CompareHandler serves review comparisons.
type CompareHandler struct {
	service *services.CompareService
}

func NewCompareHandler(service *services.CompareService) *CompareHandler {
	return &CompareHandler{service: service}
}

type compareRequest struct {
	ReviewID1 uint `json:"review_id_1" binding:"required"`
	ReviewID2 uint `json:"review_id_2" binding:"required"`
}

// Compare handles POST /api/reviews/compare.
func (h *CompareHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.NewBadRequest("review_id_1 and review_id_2 are required"))
		return
	}

	comparison, err := h.service.Compare(req.ReviewID1, req.ReviewID2)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comparison)
}
