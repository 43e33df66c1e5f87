package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/morleaf/leaf_chain/internal/models"
)

var ErrUnavailable = errors.New("search index unavailable")

const DefaultIndex = "expeditions"

// ExpeditionIndex mirrors expedition records into Elasticsearch for fuzzy
// name lookup. A nil receiver or nil client disables indexing (writes are
// no-ops, searches fail with ErrUnavailable) so the rest of the service
// keeps working without a cluster.
type ExpeditionIndex struct {
	ES   *elasticsearch.Client
	Name string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}

	return client, nil
}

func (x *ExpeditionIndex) enabled() bool {
	return x != nil && x.ES != nil
}

func (x *ExpeditionIndex) indexName() string {
	if x.Name != "" {
		return x.Name
	}
	return DefaultIndex
}

func (x *ExpeditionIndex) Index(ctx context.Context, exp models.Expedition) error {
	if !x.enabled() {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(exp); err != nil {
		return err
	}

	res, err := x.ES.Index(
		x.indexName(),
		&buf,
		x.ES.Index.WithContext(ctx),
		x.ES.Index.WithDocumentID(strconv.FormatUint(uint64(exp.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index expedition: %s", res.Status())
	}
	return nil
}

func (x *ExpeditionIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Expedition, error) {
	if !x.enabled() {
		return 0, nil, ErrUnavailable
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.indexName()),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search expeditions: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Expedition `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.Expedition, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
