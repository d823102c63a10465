package investments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"seedround/pkg/response"
)

type InvestmentHandler struct {
	service InvestmentService
}

func NewInvestmentHandler(service InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

func (h *InvestmentHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/investments", h.createInvestment)
	router.PATCH("/investments/:id", h.updateInvestment)
	router.GET("/investments/:id", h.getInvestmentByID)
	router.GET("/fund-pools/:id/investments", h.listByPool)
	router.GET("/profiles/:id/investments", h.listByProfile)
}

type createInvestmentRequest struct {
	FundPoolID int64           `json:"fund_pool_id" binding:"required"`
	ProfileID  int64           `json:"profile_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

type updateInvestmentRequest struct {
	Decision string `json:"decision"`
	Withdraw bool   `json:"withdraw"`
}

// @Summary      Create investment
// @Description  Commits a pending investment against an open fund pool
// @Tags         investments
// @Accept       json
// @Produce      json
// @Param        request body createInvestmentRequest true "Investment creation request"
// @Success      201 {object} response.APIResponse{data=Investment}
// @Failure      400 {object} response.APIResponse "Amount not positive or pool not open"
// @Failure      404 {object} response.APIResponse "Pool or investor not found"
// @Router       /investments [post]
func (h *InvestmentHandler) createInvestment(c *gin.Context) {
	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	inv, err := h.service.CreateInvestment(c.Request.Context(), req.FundPoolID, req.ProfileID, req.Amount)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusCreated, true, "investment created", inv)
}

// @Summary      Decide or withdraw investment
// @Description  Accepts/declines a pending investment ({"decision":"accept"}) or withdraws it ({"withdraw":true})
// @Tags         investments
// @Accept       json
// @Produce      json
// @Param        id path int true "Investment ID"
// @Param        request body updateInvestmentRequest true "Decision or withdrawal"
// @Success      200 {object} response.APIResponse{data=Investment}
// @Failure      400 {object} response.APIResponse "Investment not pending"
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse "Fund goal would be exceeded"
// @Failure      504 {object} response.APIResponse "Lock wait timed out, retry"
// @Router       /investments/{id} [patch]
func (h *InvestmentHandler) updateInvestment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid investment id", nil)
		return
	}

	var req updateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if req.Withdraw == (req.Decision != "") {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "provide either decision or withdraw", nil)
		return
	}

	var inv Investment
	if req.Withdraw {
		inv, err = h.service.WithdrawInvestment(c.Request.Context(), id)
	} else {
		inv, err = h.service.DecideInvestment(c.Request.Context(), id, req.Decision)
	}
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "investment updated", inv)
}

// @Summary      Get investment by ID
// @Tags         investments
// @Produce      json
// @Param        id path int true "Investment ID"
// @Success      200 {object} response.APIResponse{data=Investment}
// @Failure      404 {object} response.APIResponse
// @Router       /investments/{id} [get]
func (h *InvestmentHandler) getInvestmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid investment id", nil)
		return
	}

	inv, err := h.service.GetInvestmentByID(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "investment fetched", inv)
}

// @Summary      List investments in a fund pool
// @Tags         investments
// @Produce      json
// @Param        id path int true "Fund pool ID"
// @Success      200 {object} response.APIResponse{data=InvestmentList}
// @Router       /fund-pools/{id}/investments [get]
func (h *InvestmentHandler) listByPool(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid fund pool id", nil)
		return
	}

	list, err := h.service.ListByPool(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "investments listed", InvestmentList{Items: list, Total: int64(len(list))})
}

// @Summary      List a profile's investments
// @Tags         investments
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=InvestmentList}
// @Router       /profiles/{id}/investments [get]
func (h *InvestmentHandler) listByProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	list, err := h.service.ListByProfile(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "investments listed", InvestmentList{Items: list, Total: int64(len(list))})
}
