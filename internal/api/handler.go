package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/gin-gonic/gin"
)

// BatchConverter converts a batch of entries and keeps their order.
type BatchConverter interface {
	ConvertBatch(
		ctx context.Context,
		direction models.Direction,
		entries []models.SourceEntry,
		maxDistanceMeters float64,
		onDone func(models.ConversionResult),
	) []models.ConversionResult
}

// Handler serves the conversion endpoint.
type Handler struct {
	log       *slog.Logger
	converter BatchConverter
	limits    Limits
}

// NewHandler creates a conversion handler.
func NewHandler(log *slog.Logger, converter BatchConverter, limits Limits) *Handler {
	return &Handler{log: log, converter: converter, limits: limits}
}

func (h *Handler) convert(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	req, err := DecodeRequest(body, h.limits)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.log.InfoContext(ctx, "Rejected conversion request", "error", err)
		ctx.JSON(status, gin.H{"error": err.Error()})

		return
	}

	results := h.converter.ConvertBatch(ctx.Request.Context(), req.Direction, req.Entries, req.MaxDistanceMeters, nil)

	ctx.JSON(http.StatusOK, Response{
		OK:                true,
		Direction:         req.Direction,
		MaxDistanceMeters: req.MaxDistanceMeters,
		Results:           results,
	})
}

func (h *Handler) preflight(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
