package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/review/model"
	"movie-catalog-backend/internal/domains/review/service"
	"movie-catalog-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// AddReview adds a review to a cached movie
// POST /api/movies/:movieId/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	// Step 1: Parse movie ID (local id, không phải TMDB id)
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.BadRequest(c, "Invalid movie ID")
		return
	}

	// Step 2: Bind request body
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Call service (validate trong service)
	resp, err := h.reviewService.AddReview(c.Request.Context(), movieID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Step 4: Return success
	response.SuccessWithMessage(c, http.StatusCreated, "Review added successfully", resp)
}

// ListReviews lists reviews of a movie, oldest first
// GET /api/movies/:movieId/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.BadRequest(c, "Invalid movie ID")
		return
	}

	resp, err := h.reviewService.ListReviews(c.Request.Context(), movieID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Count: len(resp.Reviews)})
}
