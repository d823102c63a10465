package profiles

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seedround/pkg/response"
)

type ProfileHandler struct {
	service ProfileService
}

func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/profiles", h.createProfile)
	router.GET("/profiles", h.listProfiles)
	router.GET("/profiles/:id", h.getProfileByID)
	router.DELETE("/profiles/:id", h.deactivateProfile)
}

type createProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Create profile
// @Description  Registers a founder or investor profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body createProfileRequest true "Profile creation request"
// @Success      201 {object} response.APIResponse{data=Profile}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /profiles [post]
func (h *ProfileHandler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	p, err := h.service.CreateProfile(c.Request.Context(), req.Name, req.Email, req.Type, req.Password)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusCreated, true, "profile created", p)
}

// @Summary      Get profile by ID
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=Profile}
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) getProfileByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	p, err := h.service.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "profile fetched", p)
}

// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} response.APIResponse{data=ProfileList}
// @Router       /profiles [get]
func (h *ProfileHandler) listProfiles(c *gin.Context) {
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

	list, total, err := h.service.ListProfiles(c.Request.Context(), page, limit)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "profiles listed", ProfileList{Items: list, Total: total, Page: page, Limit: limit})
}

// @Summary      Deactivate profile
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) deactivateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	if err := h.service.DeactivateProfile(c.Request.Context(), id); err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "profile deactivated", nil)
}
