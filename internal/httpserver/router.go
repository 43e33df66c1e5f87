package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/morleaf/leaf_chain/internal/middleware/auth"
	"github.com/morleaf/leaf_chain/internal/models"
)

type Deps struct {
	Auth        *AuthHTTP
	Centra      *CentraHTTP
	GuardHarbor *GuardHarborHTTP
	Logistics   *LogisticsHTTP
	Gate        *authmw.RoleGate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/", d.Auth.Register)
	auth.POST("", d.Auth.Register)
	auth.POST("/token", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)

	centra := e.Group("/centra", d.Gate.RequireRole(models.RoleCentra))
	centra.POST("/new_wet_leaves", d.Centra.AddWetLeaves)
	centra.GET("/wet_leaves", d.Centra.GetWetLeaves)
	centra.PATCH("/wet_leaves/:id", d.Centra.PatchWetLeaves)
	centra.DELETE("/wet_leaves/:id", d.Centra.DeleteWetLeaves)
	centra.POST("/new_dry_leaves", d.Centra.AddDryLeaves)
	centra.GET("/dry_leaves", d.Centra.GetDryLeaves)
	centra.PATCH("/dry_leaves/:id", d.Centra.PatchDryLeaves)
	centra.DELETE("/dry_leaves/:id", d.Centra.DeleteDryLeaves)
	centra.POST("/new_flour", d.Centra.AddFlour)
	centra.GET("/flour", d.Centra.GetFlour)
	centra.PATCH("/flour/:id", d.Centra.PatchFlour)
	centra.DELETE("/flour/:id", d.Centra.DeleteFlour)

	guard := e.Group("/guard_harbor", d.Gate.RequireRole(models.RoleGuardHarbor))
	guard.POST("/add_checkpoint", d.GuardHarbor.AddCheckpoint)
	guard.POST("/update_checkpoint", d.GuardHarbor.UpdateCheckpoint)
	guard.POST("/delete_checkpoint", d.GuardHarbor.DeleteCheckpoint)
	guard.GET("/checkpoints", d.GuardHarbor.GetCheckpoints)

	logistics := e.Group("/logistics", d.Gate.RequireRole(models.RoleXYZ))
	logistics.POST("/expeditions", d.Logistics.CreateExpedition)
	logistics.GET("/expeditions", d.Logistics.GetExpeditions)
	logistics.GET("/expeditions/search", d.Logistics.SearchExpeditions)
	logistics.POST("/new_shipping", d.Logistics.CreateShipping)
	logistics.GET("/shipping", d.Logistics.GetShipping)
}
