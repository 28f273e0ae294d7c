package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/dev-tanmaydas/custos/api/model"
)

// ElasticsearchPermissionDAO resolves permissions documents from an
// Elasticsearch index, one document per resource id.
type ElasticsearchPermissionDAO struct {
	esClient *elasticsearch.Client
	index    string
	fields   model.FieldMapping
}

// NewElasticsearchPermissionDAO creates a DAO against the given
// Elasticsearch URL and index.
func NewElasticsearchPermissionDAO(esURL, index string, fields model.FieldMapping) (*ElasticsearchPermissionDAO, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchPermissionDAO{
		esClient: esClient,
		index:    index,
		fields:   fields,
	}, nil
}

// FetchPermissions gets the document for a resource id. A 404 from the
// index is a normal "no document" result.
func (d *ElasticsearchPermissionDAO) FetchPermissions(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	req := esapi.GetRequest{
		Index:      d.index,
		DocumentID: resourceID,
	}

	res, err := req.Do(ctx, d.esClient)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions for %s: %w", resourceID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("error fetching permissions for %s: %s", resourceID, res.String())
	}

	var body struct {
		Source map[string]any `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode permissions for %s: %w", resourceID, err)
	}

	doc := &model.PermissionsDoc{
		ID:     resourceID,
		Fields: make(map[string][]string),
	}
	for _, field := range d.fields.FieldNames() {
		if v, ok := body.Source[field]; ok {
			doc.Fields[field] = toStringSlice(v)
		}
	}

	return doc, nil
}
