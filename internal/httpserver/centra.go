package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/events"
	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/service"
	"github.com/morleaf/leaf_chain/internal/transport"
	"github.com/morleaf/leaf_chain/internal/util"
)

type CentraHTTP struct {
	Svc      *service.RecordService
	Producer *events.Producer
}

func publishEvent(c echo.Context, p *events.Producer, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "error", err)
	}
}

func (h *CentraHTTP) AddWetLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.add_wet_leaves")

	var req transport.WetLeavesRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("wet_leaves_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateWetLeaves(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("wet_leaves_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add wet leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type":   "wet_leaves_created",
		"id":     rec.ID,
		"weight": rec.Weight,
	})
	l.Info("wet_leaves_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

func (h *CentraHTTP) GetWetLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.get_wet_leaves")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListWetLeaves(ctx, offset, limit)
	if err != nil {
		l.Error("wet_leaves_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list wet leaves records")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}

func (h *CentraHTTP) PatchWetLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.patch_wet_leaves")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchWetLeavesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.PatchWetLeaves(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "wet leaves record not found")
		}
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("wet_leaves_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update wet leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type": "wet_leaves_updated",
		"id":   rec.ID,
	})
	return c.JSON(http.StatusOK, rec)
}

func (h *CentraHTTP) DeleteWetLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.delete_wet_leaves")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteWetLeaves(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "wet leaves record not found")
		}
		l.Error("wet_leaves_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete wet leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type": "wet_leaves_deleted",
		"id":   id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CentraHTTP) AddDryLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.add_dry_leaves")

	var req transport.DryLeavesRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("dry_leaves_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateDryLeaves(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("dry_leaves_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add dry leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type":   "dry_leaves_created",
		"id":     rec.ID,
		"weight": rec.Weight,
	})
	l.Info("dry_leaves_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

func (h *CentraHTTP) GetDryLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.get_dry_leaves")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListDryLeaves(ctx, offset, limit)
	if err != nil {
		l.Error("dry_leaves_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list dry leaves records")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}

func (h *CentraHTTP) PatchDryLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.patch_dry_leaves")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchDryLeavesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.PatchDryLeaves(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "dry leaves record not found")
		}
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("dry_leaves_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update dry leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type": "dry_leaves_updated",
		"id":   rec.ID,
	})
	return c.JSON(http.StatusOK, rec)
}

func (h *CentraHTTP) DeleteDryLeaves(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.delete_dry_leaves")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteDryLeaves(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "dry leaves record not found")
		}
		l.Error("dry_leaves_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete dry leaves record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type": "dry_leaves_deleted",
		"id":   id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CentraHTTP) AddFlour(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.add_flour")

	var req transport.FlourRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("flour_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateFlour(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("flour_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add flour record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type":   "flour_created",
		"id":     rec.ID,
		"weight": rec.Weight,
	})
	l.Info("flour_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

func (h *CentraHTTP) GetFlour(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.get_flour")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListFlour(ctx, offset, limit)
	if err != nil {
		l.Error("flour_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list flour records")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}

func (h *CentraHTTP) PatchFlour(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.patch_flour")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchFlourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.PatchFlour(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "flour record not found")
		}
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be positive")
		}
		l.Error("flour_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update flour record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type": "flour_updated",
		"id":   rec.ID,
	})
	return c.JSON(http.StatusOK, rec)
}

func (h *CentraHTTP) DeleteFlour(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "centra.delete_flour")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteFlour(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "flour record not found")
		}
		l.Error("flour_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete flour record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type": "flour_deleted",
		"id":   id,
	})
	return c.NoContent(http.StatusNoContent)
}
