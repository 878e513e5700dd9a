package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/curatedlist/model"
	"movie-catalog-backend/internal/domains/curatedlist/service"
	"movie-catalog-backend/internal/shared/response"
)

type CuratedListHandler struct {
	service service.ServiceInterface
}

func NewCuratedListHandler(svc service.ServiceInterface) *CuratedListHandler {
	return &CuratedListHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/curated-lists
// ════════════════════════════════════════════════════════════════

func (h *CuratedListHandler) Create(c *gin.Context) {
	var req model.CreateCuratedListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Curated list created successfully", list)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/curated-lists/:curatedListId
// ════════════════════════════════════════════════════════════════

func (h *CuratedListHandler) Update(c *gin.Context) {
	// Step 1: Parse id
	id, err := uuid.Parse(c.Param("curatedListId"))
	if err != nil {
		response.BadRequest(c, "Invalid curated list ID")
		return
	}

	// Step 2: Bind body
	var req model.UpdateCuratedListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Call service
	list, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Curated list updated successfully", list)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/curated-lists/:curatedListId
// ════════════════════════════════════════════════════════════════

func (h *CuratedListHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("curatedListId"))
	if err != nil {
		response.BadRequest(c, "Invalid curated list ID")
		return
	}

	list, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}
