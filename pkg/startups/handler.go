package startups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seedround/pkg/response"
)

type StartupHandler struct {
	service StartupService
}

func NewStartupHandler(service StartupService) *StartupHandler {
	return &StartupHandler{service: service}
}

func (h *StartupHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups", h.createStartup)
	router.DELETE("/startups/:id", h.deleteStartup)
	router.GET("/startups", h.listStartups)
	router.GET("/startups/:id", h.getStartupByID)
	router.GET("/profiles/:id/startups", h.listStartupsByFounder)
}

type createStartupRequest struct {
	FounderID   int64  `json:"founder_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// @Summary      Create a new startup
// @Description  Creates a startup owned by a founder profile; the founder becomes its first admin member
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        request body createStartupRequest true "Startup creation request"
// @Success      201  {object}  response.APIResponse{data=Startup} "Startup created successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "Founder profile not found"
// @Router       /startups [post]
func (h *StartupHandler) createStartup(c *gin.Context) {
	var req createStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	startup, err := h.service.CreateStartup(c.Request.Context(), req.FounderID, req.Name, req.Description)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "startup created", startup)
}

// @Summary      Delete a startup
// @Description  Soft deletes a startup by ID
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse "Startup deleted successfully"
// @Failure      400  {object}  response.APIResponse "Invalid startup ID"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id} [delete]
func (h *StartupHandler) deleteStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	if err := h.service.DeleteStartup(c.Request.Context(), id); err != nil {
		response.SendAPIError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup deleted", nil)
}

// @Summary      Get startup by ID
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup retrieved successfully"
// @Failure      400  {object}  response.APIResponse "Invalid startup ID"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id} [get]
func (h *StartupHandler) getStartupByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	startup, err := h.service.GetStartupByID(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup fetched", startup)
}

// @Summary      List all startups
// @Tags         startups
// @Produce      json
// @Param        page   query     int  false  "Page number" default(1)
// @Param        limit  query     int  false  "Items per page" default(10)
// @Success      200  {object}  response.APIResponse{data=StartupList} "Startups retrieved successfully"
// @Router       /startups [get]
func (h *StartupHandler) listStartups(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	startupsList, total, err := h.service.ListStartups(c.Request.Context(), page, limit)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}

	data := StartupList{Items: startupsList, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "startups listed", data)
}

// @Summary      List startups by founder
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Founder profile ID"
// @Success      200  {object}  response.APIResponse{data=StartupList} "Startups retrieved successfully"
// @Router       /profiles/{id}/startups [get]
func (h *StartupHandler) listStartupsByFounder(c *gin.Context) {
	founderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || founderID <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	list, err := h.service.ListStartupsByFounder(c.Request.Context(), founderID)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startups fetched by founder", StartupList{Items: list, Total: int64(len(list))})
}
