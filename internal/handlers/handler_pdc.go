package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/bullion_ledger_app/internal/core/services"
	"github.com/aurumworks/bullion_ledger_app/internal/dto"
	"github.com/aurumworks/bullion_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pdcHandler handles HTTP requests for post-dated cheque lifecycle actions.
type pdcHandler struct {
	pdcService      portssvc.PDCSvcFacade
	maturityService portssvc.MaturitySvcFacade
}

// newPDCHandler creates a new pdcHandler.
func newPDCHandler(pdcService portssvc.PDCSvcFacade, maturityService portssvc.MaturitySvcFacade) *pdcHandler {
	return &pdcHandler{
		pdcService:      pdcService,
		maturityService: maturityService,
	}
}

// respondPDCError translates PDC service errors into HTTP responses.
func respondPDCError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, services.ErrCashItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotPDC),
		errors.Is(err, services.ErrPDCNotPending),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// resolvePDC runs one cheque lifecycle action and writes the common response.
func (h *pdcHandler) resolvePDC(
	c *gin.Context,
	action string,
	fn func(ctx *gin.Context, entryID, cashItemID, actorID string) error,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	cashItemID := c.Param("cashItemID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := fn(c, entryID, cashItemID, actorID); err != nil {
		respondPDCError(c, logger, err, action)
	}
}

// clearPDC godoc
// @Summary Clear a post-dated cheque
// @Description Settles a matured cheque line: the held amount moves from the PDC account to the bank account
// @Tags pdc
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   cashItemID path string true "Cash line ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry or cash line not found"
// @Failure 409 {object} map[string]string "Line is not a pending cheque"
// @Router /entries/{entryID}/cash-items/{cashItemID}/clear [post]
func (h *pdcHandler) clearPDC(c *gin.Context) {
	h.resolvePDC(c, "clear cheque", func(ctx *gin.Context, entryID, cashItemID, actorID string) error {
		entry, err := h.pdcService.ClearPDC(ctx.Request.Context(), entryID, cashItemID, actorID)
		if err != nil {
			return err
		}
		ctx.JSON(http.StatusOK, dto.ToEntryResponse(entry))
		return nil
	})
}

// bouncePDC godoc
// @Summary Bounce a post-dated cheque
// @Description Rejects a cheque line, reversing both the held amount and the original party effect
// @Tags pdc
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   cashItemID path string true "Cash line ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry or cash line not found"
// @Failure 409 {object} map[string]string "Line is not a pending cheque"
// @Router /entries/{entryID}/cash-items/{cashItemID}/bounce [post]
func (h *pdcHandler) bouncePDC(c *gin.Context) {
	h.resolvePDC(c, "bounce cheque", func(ctx *gin.Context, entryID, cashItemID, actorID string) error {
		entry, err := h.pdcService.BouncePDC(ctx.Request.Context(), entryID, cashItemID, actorID)
		if err != nil {
			return err
		}
		ctx.JSON(http.StatusOK, dto.ToEntryResponse(entry))
		return nil
	})
}

// cancelPDC godoc
// @Summary Cancel a post-dated cheque
// @Description Withdraws a cheque line before maturity, with the same balance reversal as a bounce
// @Tags pdc
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   cashItemID path string true "Cash line ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry or cash line not found"
// @Failure 409 {object} map[string]string "Line is not a pending cheque"
// @Router /entries/{entryID}/cash-items/{cashItemID}/cancel [post]
func (h *pdcHandler) cancelPDC(c *gin.Context) {
	h.resolvePDC(c, "cancel cheque", func(ctx *gin.Context, entryID, cashItemID, actorID string) error {
		entry, err := h.pdcService.CancelPDC(ctx.Request.Context(), entryID, cashItemID, actorID)
		if err != nil {
			return err
		}
		ctx.JSON(http.StatusOK, dto.ToEntryResponse(entry))
		return nil
	})
}

// processMatured godoc
// @Summary Sweep matured post-dated cheques
// @Description Clears every pending schedule whose maturity posting date has arrived. Safe to invoke repeatedly; per-item failures are collected in the result.
// @Tags pdc
// @Produce  json
// @Success 200 {object} dto.MaturityResultResponse
// @Failure 500 {object} map[string]string "Sweep could not run"
// @Router /pdc/process-matured [post]
func (h *pdcHandler) processMatured(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.maturityService.ProcessMaturedPDCs(c.Request.Context(), actorID)
	if err != nil {
		logger.Error("Failed to run maturity sweep", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run maturity sweep"})
		return
	}

	if len(result.Errors) > 0 {
		logger.Warn("Maturity sweep finished with failures",
			slog.Int("processed", result.Processed),
			slog.Int("failed", len(result.Errors)))
	}

	c.JSON(http.StatusOK, dto.ToMaturityResultResponse(result))
}

// registerPDCRoutes wires the cheque lifecycle and sweep routes.
func registerPDCRoutes(group *gin.RouterGroup, pdcService portssvc.PDCSvcFacade, maturityService portssvc.MaturitySvcFacade) {
	h := newPDCHandler(pdcService, maturityService)

	group.POST("/entries/:entryID/cash-items/:cashItemID/clear", h.clearPDC)
	group.POST("/entries/:entryID/cash-items/:cashItemID/bounce", h.bouncePDC)
	group.POST("/entries/:entryID/cash-items/:cashItemID/cancel", h.cancelPDC)
	group.POST("/pdc/process-matured", h.processMatured)
}
