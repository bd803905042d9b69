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

// entryHandler handles HTTP requests for voucher entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// respondEntryError translates service errors into HTTP responses.
func respondEntryError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, services.ErrVoucherCodeTaken),
		errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, services.ErrEntryAlreadyInState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrEntryTypeInvalid),
		errors.Is(err, services.ErrEntryLinesInvalid),
		errors.Is(err, services.ErrPartyNotFound),
		errors.Is(err, services.ErrOppositeAccount),
		errors.Is(err, services.ErrBankPDCConfig),
		errors.Is(err, services.ErrChequeNotDue),
		errors.Is(err, services.ErrCurrencyUnknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createEntry godoc
// @Summary Create a voucher entry
// @Description Creates a new metal/cash/currency voucher. An entry submitted as APPROVED posts its ledger and balance effects immediately.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry to create"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Voucher code already in use"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a voucher entry
// @Description Retrieves an entry with its stock/cash lines by ID
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondEntryError(c, logger, err, "retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// getEntryRegistry godoc
// @Summary Get the ledger rows of a voucher
// @Description Retrieves the registry rows posted under the entry's voucher code, for audit-trail reconstruction
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.RegistryRowResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID}/registry [get]
func (h *entryHandler) getEntryRegistry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	rows, err := h.entryService.GetEntryRegistry(c.Request.Context(), entryID)
	if err != nil {
		respondEntryError(c, logger, err, "retrieve entry registry")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistryRowResponses(rows))
}

// updateEntry godoc
// @Summary Update a voucher entry
// @Description Replaces the entry's type, date, narration and lines. An approved entry has its old effects reversed and the new ones posted in one unit.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Updated fields"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), entryID, req, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntryStatus godoc
// @Summary Move a voucher between draft and approved
// @Description Approval posts the entry's effects; demotion to draft reverses them
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   status body dto.UpdateEntryStatusRequest true "Target status"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid status or cheque not due"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already in the requested status"
// @Router /entries/{entryID}/status [patch]
func (h *entryHandler) updateEntryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntryStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateEntryStatus(c.Request.Context(), entryID, req.Status, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "update entry status")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a voucher entry
// @Description Reverses an approved entry's ledger and balance effects, then removes the voucher
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondEntryError(c, logger, err, "delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerEntryRoutes wires the entry lifecycle routes.
func registerEntryRoutes(group *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.GET("/:entryID/registry", h.getEntryRegistry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.PATCH("/:entryID/status", h.updateEntryStatus)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}
