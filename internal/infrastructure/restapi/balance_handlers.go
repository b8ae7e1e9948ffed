package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset_tracker/internal/app/port"
	"asset_tracker/internal/domain/entity"
)

// BalanceHandler serves the aggregate balance queries over HTTP.
type BalanceHandler struct {
	balanceService port.BalanceService
	logger         port.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(bs port.BalanceService, logger port.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: bs,
		logger:         logger,
	}
}

// errorResponse is the uniform error body for all handlers.
type errorResponse struct {
	Error string `json:"error"`
}

// GetAllBalancesHandler returns point-in-time totals for every wallet.
func (h *BalanceHandler) GetAllBalancesHandler(c *gin.Context) {
	result, err := h.balanceService.AllWalletsBalance(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute all-wallets balance", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute balances"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllBalancesChangeHandler returns the change over one period, or all
// three when no period is given.
func (h *BalanceHandler) GetAllBalancesChangeHandler(c *gin.Context) {
	ctx := c.Request.Context()

	periodParam := c.Query("period")
	if periodParam == "" {
		results, err := h.balanceService.AllWalletsChangeAllPeriods(ctx)
		if err != nil {
			h.logger.Error("Failed to compute balance changes", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute balance changes"})
			return
		}
		c.JSON(http.StatusOK, results)
		return
	}

	period := entity.Period(periodParam)
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "period must be one of 1d, 7d, 30d"})
		return
	}
	result, err := h.balanceService.AllWalletsChange(ctx, period)
	if err != nil {
		h.logger.Error("Failed to compute balance change", "period", string(period), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute balance change"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGroupBalanceHandler returns the point-in-time total of one group. An
// unknown group yields a zero-valued result by design, not a 404.
func (h *BalanceHandler) GetGroupBalanceHandler(c *gin.Context) {
	groupID := c.Param("groupId")
	result, err := h.balanceService.GroupBalance(c.Request.Context(), groupID)
	if err != nil {
		h.logger.Error("Failed to compute group balance", "group_id", groupID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute group balance"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGroupBalanceChangeHandler returns the change over one period for one group.
func (h *BalanceHandler) GetGroupBalanceChangeHandler(c *gin.Context) {
	groupID := c.Param("groupId")
	period := entity.Period(c.DefaultQuery("period", string(entity.Period1d)))
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "period must be one of 1d, 7d, 30d"})
		return
	}
	result, err := h.balanceService.GroupChange(c.Request.Context(), groupID, period)
	if err != nil {
		h.logger.Error("Failed to compute group balance change", "group_id", groupID, "period", string(period), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute group balance change"})
		return
	}
	c.JSON(http.StatusOK, result)
}
