package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/membership/service"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/internal/shared/response"
)

// =====================================================
// MEMBERSHIP HANDLER
// =====================================================

type MembershipHandler struct {
	membershipService service.ServiceInterface
}

func NewMembershipHandler(membershipService service.ServiceInterface) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// AddToWatchlist POST /api/movies/watchlist
func (h *MembershipHandler) AddToWatchlist(c *gin.Context) {
	h.addToSimpleList(c, model.Watchlist())
}

// AddToWishlist POST /api/movies/wishlist
func (h *MembershipHandler) AddToWishlist(c *gin.Context) {
	h.addToSimpleList(c, model.Wishlist())
}

// AddToCuratedList POST /api/movies/curated-list
func (h *MembershipHandler) AddToCuratedList(c *gin.Context) {
	// Step 1: Bind body
	var req model.AddToCuratedListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Validate
	if err := req.Validate(); err != nil {
		response.FromError(c, apperror.NewValidationErrorWrap(err))
		return
	}

	// Step 3: Call service
	h.add(c, model.CuratedList(req.ListID()), req.MovieID)
}

// =====================================================
// HELPERS
// =====================================================

func (h *MembershipHandler) addToSimpleList(c *gin.Context, target model.ListTarget) {
	var req model.AddMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, apperror.NewValidationErrorWrap(err))
		return
	}

	h.add(c, target, req.MovieID)
}

func (h *MembershipHandler) add(c *gin.Context, target model.ListTarget, externalID int64) {
	resp, err := h.membershipService.AddMovie(c.Request.Context(), target, externalID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	message := fmt.Sprintf("Movie added to the %s successfully.", target.Kind.DisplayName())
	response.SuccessWithMessage(c, http.StatusOK, message, resp)
}
