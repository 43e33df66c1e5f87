package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/events"
	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/service"
	"github.com/morleaf/leaf_chain/internal/transport"
	"github.com/morleaf/leaf_chain/internal/util"
)

type GuardHarborHTTP struct {
	Svc      *service.CheckpointService
	Producer *events.Producer
}

func (h *GuardHarborHTTP) AddCheckpoint(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "guard_harbor.add_checkpoint")

	var req transport.CheckpointRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkpoint_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateCheckpoint(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid checkpoint data")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shipping record not found")
		}
		l.Error("checkpoint_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add checkpoint record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type":        "checkpoint_created",
		"id":          rec.ID,
		"shipping_id": rec.ShippingID,
	})
	l.Info("checkpoint_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

// UpdateCheckpoint keeps the original POST + checkpoint_id query parameter
// shape of the endpoint.
func (h *GuardHarborHTTP) UpdateCheckpoint(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "guard_harbor.update_checkpoint")

	id, err := parseID(c.QueryParam("checkpoint_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkpoint_id is not an integer")
	}

	var req transport.PatchCheckpointRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.PatchCheckpoint(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "checkpoint not found")
		}
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid checkpoint data")
		}
		l.Error("checkpoint_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update checkpoint record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type": "checkpoint_updated",
		"id":   rec.ID,
	})
	return c.JSON(http.StatusOK, rec)
}

func (h *GuardHarborHTTP) DeleteCheckpoint(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "guard_harbor.delete_checkpoint")

	id, err := parseID(c.QueryParam("checkpoint_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checkpoint_id is not an integer")
	}

	if err := h.Svc.DeleteCheckpoint(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "checkpoint not found")
		}
		l.Error("checkpoint_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete checkpoint record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type": "checkpoint_deleted",
		"id":   id,
	})
	return c.JSON(http.StatusOK, echo.Map{"detail": "checkpoint deleted"})
}

func (h *GuardHarborHTTP) GetCheckpoints(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "guard_harbor.get_checkpoints")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListCheckpoints(ctx, offset, limit)
	if err != nil {
		l.Error("checkpoint_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list checkpoint records")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}
