package members

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seedround/pkg/response"
)

type MemberHandler struct {
	service MemberService
}

func NewMemberHandler(service MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups/:id/members", h.addMember)
	router.DELETE("/startups/:id/members/:profile_id", h.removeMember)
	router.PATCH("/startups/:id/members/:profile_id", h.changeRole)
	router.GET("/startups/:id/members", h.listMembers)
}

type addMemberRequest struct {
	ProfileID int64  `json:"profile_id" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func parsePathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// @Summary      Add startup member
// @Description  Adds a profile to a startup with the given role
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        request body addMemberRequest true "Member request"
// @Success      201 {object} response.APIResponse{data=Member}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse "Profile already a member"
// @Router       /startups/{id}/members [post]
func (h *MemberHandler) addMember(c *gin.Context) {
	startupID, ok := parsePathID(c, "id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	m, err := h.service.AddMember(c.Request.Context(), startupID, req.ProfileID, req.Role)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusCreated, true, "member added", m)
}

// @Summary      Remove startup member
// @Description  Removes a profile from a startup. Removing the last admin is rejected.
// @Tags         members
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        profile_id path int true "Profile ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse "Last admin cannot be removed"
// @Failure      404 {object} response.APIResponse
// @Router       /startups/{id}/members/{profile_id} [delete]
func (h *MemberHandler) removeMember(c *gin.Context) {
	startupID, ok := parsePathID(c, "id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}
	profileID, ok := parsePathID(c, "profile_id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), startupID, profileID); err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "member removed", nil)
}

// @Summary      Change member role
// @Description  Changes a member's role. Demoting the sole admin is rejected.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        profile_id path int true "Profile ID"
// @Param        request body changeRoleRequest true "Role change request"
// @Success      200 {object} response.APIResponse{data=Member}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /startups/{id}/members/{profile_id} [patch]
func (h *MemberHandler) changeRole(c *gin.Context) {
	startupID, ok := parsePathID(c, "id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}
	profileID, ok := parsePathID(c, "profile_id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	m, err := h.service.ChangeRole(c.Request.Context(), startupID, profileID, req.Role)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "member role updated", m)
}

// @Summary      List startup members
// @Tags         members
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200 {object} response.APIResponse{data=MemberList}
// @Router       /startups/{id}/members [get]
func (h *MemberHandler) listMembers(c *gin.Context) {
	startupID, ok := parsePathID(c, "id")
	if !ok {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	list, err := h.service.ListMembers(c.Request.Context(), startupID)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "members listed", MemberList{Items: list, Total: int64(len(list))})
}
