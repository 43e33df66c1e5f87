package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/events"
	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/search"
	"github.com/morleaf/leaf_chain/internal/service"
	"github.com/morleaf/leaf_chain/internal/transport"
	"github.com/morleaf/leaf_chain/internal/util"
)

type LogisticsHTTP struct {
	Svc      *service.LogisticsService
	Producer *events.Producer
}

func (h *LogisticsHTTP) CreateExpedition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logistics.create_expedition")

	var req transport.ExpeditionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("expedition_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateExpedition(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "name is required")
		}
		l.Error("expedition_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add expedition")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type": "expedition_created",
		"id":   rec.ID,
		"name": rec.Name,
	})
	l.Info("expedition_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

func (h *LogisticsHTTP) GetExpeditions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logistics.get_expeditions")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListExpeditions(ctx, offset, limit)
	if err != nil {
		l.Error("expedition_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list expeditions")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}

func (h *LogisticsHTTP) SearchExpeditions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logistics.search_expeditions")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchExpeditions(ctx, q, offset, limit)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "q is required")
		}
		if errors.Is(err, search.ErrUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
		}
		l.Error("expedition_search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search expeditions")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}

func (h *LogisticsHTTP) CreateShipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logistics.create_shipping")

	var req transport.ShippingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("shipping_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.CreateShipping(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "expedition_id is required")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "expedition not found")
		}
		l.Error("shipping_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add shipping record")
	}

	publishEvent(c, h.Producer, fmt.Sprint(rec.ID), map[string]any{
		"type":          "shipping_created",
		"id":            rec.ID,
		"expedition_id": rec.ExpeditionID,
	})
	l.Info("shipping_created", "id", rec.ID)
	return c.JSON(http.StatusCreated, rec)
}

func (h *LogisticsHTTP) GetShipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logistics.get_shipping")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListShipping(ctx, offset, limit)
	if err != nil {
		l.Error("shipping_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list shipping records")
	}

	return c.JSON(http.StatusOK, listPayload(page, offset, limit, total, items))
}
