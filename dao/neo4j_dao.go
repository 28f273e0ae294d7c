package dao

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dev-tanmaydas/custos/api/model"
)

// Neo4jPermissionDAO resolves permissions documents from resource nodes in
// Neo4j: the six actor lists live as list properties on a (:Resource)
// node keyed by id.
type Neo4jPermissionDAO struct {
	Driver neo4j.Driver
	fields model.FieldMapping
}

func NewNeo4jPermissionDAO(driver neo4j.Driver, fields model.FieldMapping) *Neo4jPermissionDAO {
	return &Neo4jPermissionDAO{
		Driver: driver,
		fields: fields,
	}
}

// FetchPermissions reads the actor-list properties off the resource node.
// A missing node is a normal "no document" result.
func (d *Neo4jPermissionDAO) FetchPermissions(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	session := d.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (r:Resource {id: $id})
		RETURN r
		`
		res, err := transaction.Run(query, map[string]interface{}{"id": resourceID})
		if err != nil {
			return nil, err
		}
		if !res.Next() {
			return nil, nil
		}
		node, ok := res.Record().Values[0].(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected record value for resource %s", resourceID)
		}
		return node.Props, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions for %s: %w", resourceID, err)
	}
	if result == nil {
		return nil, nil
	}

	props := result.(map[string]interface{})
	doc := &model.PermissionsDoc{
		ID:     resourceID,
		Fields: make(map[string][]string),
	}
	for _, field := range d.fields.FieldNames() {
		if v, ok := props[field]; ok {
			doc.Fields[field] = toStringSlice(v)
		}
	}

	return doc, nil
}
