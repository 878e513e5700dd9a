package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/domains/movie/service"
	"movie-catalog-backend/internal/shared/response"
)

// =====================================================
// MOVIE HANDLER
// =====================================================

type MovieHandler struct {
	movieService service.ServiceInterface
}

func NewMovieHandler(movieService service.ServiceInterface) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/movies/search?query=
// ════════════════════════════════════════════════════════════════

func (h *MovieHandler) SearchMovies(c *gin.Context) {
	// Step 1: Bind query
	var req model.SearchMoviesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 2: Call service (validate trong service)
	resp, err := h.movieService.SearchMovies(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Step 3: Return success
	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Count: len(resp.Movies)})
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/movies/searchByGenreAndActor?genre=&actor=
// ════════════════════════════════════════════════════════════════

func (h *MovieHandler) SearchByGenreAndActor(c *gin.Context) {
	var req model.SearchByGenreActorRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.movieService.SearchByGenreOrActor(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Count: len(resp.Movies)})
}

// ════════════════════════════════════════════════════════════════
// SORT: GET /api/movies/sort?list=&sortBy=&order=&curatedListId=
// ════════════════════════════════════════════════════════════════

func (h *MovieHandler) SortList(c *gin.Context) {
	var req model.SortListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.movieService.SortList(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Count: len(resp.Movies)})
}

// ════════════════════════════════════════════════════════════════
// TOP RATED: GET /api/movies/top5?limit=
// ════════════════════════════════════════════════════════════════

func (h *MovieHandler) TopRated(c *gin.Context) {
	var req model.TopRatedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "limit must be an integer")
		return
	}

	resp, err := h.movieService.TopRated(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
