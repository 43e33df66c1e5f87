package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/transport"
)

func TestAddWetLeaves(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/centra/add_wet_leaves", transport.WetLeavesRequest{
		RetrievalDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Weight:        12.5,
	})
	require.NoError(t, env.Centra.AddWetLeaves(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.WetLeaves
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 12.5, created.Weight)
}

func TestAddWetLeaves_NonPositiveWeight(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/centra/add_wet_leaves", transport.WetLeavesRequest{
		RetrievalDate: time.Now().UTC(),
		Weight:        0,
	})
	err := env.Centra.AddWetLeaves(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetWetLeaves_Pagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 15; i++ {
		_, c := env.doJSONRequest(http.MethodPost, "/centra/add_wet_leaves", transport.WetLeavesRequest{
			RetrievalDate: time.Now().UTC(),
			Weight:        1.0 + float64(i),
		})
		require.NoError(t, env.Centra.AddWetLeaves(c))
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/centra/get_wet_leaves?page=2&size=10", nil)
	require.NoError(t, env.Centra.GetWetLeaves(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data []models.WetLeaves `json:"data"`
		Meta struct {
			Page  int   `json:"page"`
			Size  int   `json:"size"`
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Data, 5)
	assert.Equal(t, 2, payload.Meta.Page)
	assert.Equal(t, int64(15), payload.Meta.Total)
}

func TestPatchWetLeaves(t *testing.T) {
	env := newTestEnv(t)

	createRec, createCtx := env.doJSONRequest(http.MethodPost, "/centra/add_wet_leaves", transport.WetLeavesRequest{
		RetrievalDate: time.Now().UTC(),
		Weight:        10,
	})
	require.NoError(t, env.Centra.AddWetLeaves(createCtx))

	var created models.WetLeaves
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	weight := 42.0
	rec, c := env.doJSONRequest(http.MethodPatch, "/centra/update_wet_leaves/1", transport.PatchWetLeavesRequest{
		Weight: &weight,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Centra.PatchWetLeaves(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.WetLeaves
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 42.0, updated.Weight)
	assert.Equal(t, created.RetrievalDate.Unix(), updated.RetrievalDate.Unix())
}

func TestPatchWetLeaves_NotFound(t *testing.T) {
	env := newTestEnv(t)

	weight := 5.0
	_, c := env.doJSONRequest(http.MethodPatch, "/centra/update_wet_leaves/99", transport.PatchWetLeavesRequest{
		Weight: &weight,
	})
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.Centra.PatchWetLeaves(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteWetLeaves(t *testing.T) {
	env := newTestEnv(t)

	_, createCtx := env.doJSONRequest(http.MethodPost, "/centra/add_wet_leaves", transport.WetLeavesRequest{
		RetrievalDate: time.Now().UTC(),
		Weight:        3,
	})
	require.NoError(t, env.Centra.AddWetLeaves(createCtx))

	rec, c := env.doJSONRequest(http.MethodDelete, "/centra/delete_wet_leaves/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Centra.DeleteWetLeaves(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, c = env.doJSONRequest(http.MethodDelete, "/centra/delete_wet_leaves/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := env.Centra.DeleteWetLeaves(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestAddFlour(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/centra/add_flour", transport.FlourRequest{
		FinishTime: time.Now().UTC(),
		Weight:     7.25,
	})
	require.NoError(t, env.Centra.AddFlour(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Flour
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 7.25, created.Weight)
}

func (env *testEnv) createExpedition(t *testing.T, name string) models.Expedition {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/logistics/expeditions", transport.ExpeditionRequest{Name: name})
	require.NoError(t, env.Logistics.CreateExpedition(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var exp models.Expedition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exp))
	return exp
}

func (env *testEnv) createShipping(t *testing.T, expeditionID uint) models.Shipping {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/logistics/shipping", transport.ShippingRequest{
		DepartureDate: time.Now().UTC(),
		ExpeditionID:  expeditionID,
	})
	require.NoError(t, env.Logistics.CreateShipping(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var ship models.Shipping
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ship))
	return ship
}

func TestCreateShipping_MissingExpedition(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/logistics/shipping", transport.ShippingRequest{
		DepartureDate: time.Now().UTC(),
		ExpeditionID:  99,
	})
	err := env.Logistics.CreateShipping(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateShipping(t *testing.T) {
	env := newTestEnv(t)
	exp := env.createExpedition(t, "java-batch-7")

	ship := env.createShipping(t, exp.ID)
	assert.NotZero(t, ship.ID)
	assert.Equal(t, exp.ID, ship.ExpeditionID)
}

func TestSearchExpeditions_Unavailable(t *testing.T) {
	env := newTestEnv(t)
	env.createExpedition(t, "java-batch-7")

	_, c := env.doJSONRequest(http.MethodGet, "/logistics/expeditions/search?q=java", nil)
	err := env.Logistics.SearchExpeditions(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestSearchExpeditions_MissingQuery(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/logistics/expeditions/search", nil)
	err := env.Logistics.SearchExpeditions(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAddCheckpoint_MissingShipping(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/guard_harbor/add_checkpoint", transport.CheckpointRequest{
		ArrivalDate:   time.Now().UTC(),
		TotalWeight:   100,
		TotalPackages: 4,
		ShippingID:    99,
	})
	err := env.GuardHarbor.AddCheckpoint(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestAddCheckpoint(t *testing.T) {
	env := newTestEnv(t)
	exp := env.createExpedition(t, "java-batch-7")
	ship := env.createShipping(t, exp.ID)

	rec, c := env.doJSONRequest(http.MethodPost, "/guard_harbor/add_checkpoint", transport.CheckpointRequest{
		ArrivalDate:   time.Now().UTC(),
		TotalWeight:   250.5,
		TotalPackages: 12,
		ShippingID:    ship.ID,
	})
	require.NoError(t, env.GuardHarbor.AddCheckpoint(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Checkpoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, ship.ID, created.ShippingID)
	assert.Equal(t, 12, created.TotalPackages)
}

func TestUpdateCheckpoint(t *testing.T) {
	env := newTestEnv(t)
	exp := env.createExpedition(t, "java-batch-7")
	ship := env.createShipping(t, exp.ID)

	createRec, createCtx := env.doJSONRequest(http.MethodPost, "/guard_harbor/add_checkpoint", transport.CheckpointRequest{
		ArrivalDate:   time.Now().UTC(),
		TotalWeight:   100,
		TotalPackages: 4,
		ShippingID:    ship.ID,
	})
	require.NoError(t, env.GuardHarbor.AddCheckpoint(createCtx))

	var created models.Checkpoint
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	packages := 9
	rec, c := env.doJSONRequest(http.MethodPost, "/guard_harbor/update_checkpoint?checkpoint_id=1", transport.PatchCheckpointRequest{
		TotalPackages: &packages,
	})
	require.NoError(t, env.GuardHarbor.UpdateCheckpoint(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Checkpoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 9, updated.TotalPackages)
	assert.Equal(t, created.TotalWeight, updated.TotalWeight)
}

func TestUpdateCheckpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	packages := 9
	_, c := env.doJSONRequest(http.MethodPost, "/guard_harbor/update_checkpoint?checkpoint_id=99", transport.PatchCheckpointRequest{
		TotalPackages: &packages,
	})
	err := env.GuardHarbor.UpdateCheckpoint(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteCheckpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/guard_harbor/delete_checkpoint?checkpoint_id=99", nil)
	err := env.GuardHarbor.DeleteCheckpoint(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
