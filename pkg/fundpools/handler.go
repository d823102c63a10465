package fundpools

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"seedround/pkg/response"
)

type FundPoolHandler struct {
	service FundPoolService
}

func NewFundPoolHandler(service FundPoolService) *FundPoolHandler {
	return &FundPoolHandler{service: service}
}

func (h *FundPoolHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/fund-pools", h.createFundPool)
	router.GET("/fund-pools", h.listFundPools)
	router.GET("/fund-pools/:id", h.getFundPoolByID)
	router.GET("/startups/:id/fund-pool", h.getFundPoolByStartup)
}

type createFundPoolRequest struct {
	StartupID int64           `json:"startup_id" binding:"required"`
	FundGoal  decimal.Decimal `json:"fund_goal" binding:"required"`
}

// @Summary      Create fund pool
// @Description  Opens a capped funding pool for a startup. One pool per startup.
// @Tags         fund-pools
// @Accept       json
// @Produce      json
// @Param        request body createFundPoolRequest true "Fund pool creation request"
// @Success      201 {object} response.APIResponse{data=FundPool}
// @Failure      400 {object} response.APIResponse "Fund goal must be positive"
// @Failure      404 {object} response.APIResponse "Startup not found"
// @Failure      409 {object} response.APIResponse "Startup already has a fund pool"
// @Router       /fund-pools [post]
func (h *FundPoolHandler) createFundPool(c *gin.Context) {
	var req createFundPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	p, err := h.service.CreateFundPool(c.Request.Context(), req.StartupID, req.FundGoal)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusCreated, true, "fund pool created", p)
}

// @Summary      Get fund pool by ID
// @Tags         fund-pools
// @Produce      json
// @Param        id path int true "Fund pool ID"
// @Success      200 {object} response.APIResponse{data=FundPool}
// @Failure      404 {object} response.APIResponse
// @Router       /fund-pools/{id} [get]
func (h *FundPoolHandler) getFundPoolByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid fund pool id", nil)
		return
	}

	p, err := h.service.GetFundPoolByID(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "fund pool fetched", p)
}

// @Summary      Get a startup's fund pool
// @Tags         fund-pools
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200 {object} response.APIResponse{data=FundPool}
// @Failure      404 {object} response.APIResponse
// @Router       /startups/{id}/fund-pool [get]
func (h *FundPoolHandler) getFundPoolByStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	p, err := h.service.GetFundPoolByStartup(c.Request.Context(), id)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "fund pool fetched", p)
}

// @Summary      List fund pools
// @Tags         fund-pools
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} response.APIResponse{data=FundPoolList}
// @Router       /fund-pools [get]
func (h *FundPoolHandler) listFundPools(c *gin.Context) {
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

	list, total, err := h.service.ListFundPools(c.Request.Context(), page, limit)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "fund pools listed", FundPoolList{Items: list, Total: total, Page: page, Limit: limit})
}
