package model

// PermissionsDoc is the access-control metadata record for one resource: a
// mapping from field name to the list of actor identifiers holding that
// field's access. It is produced by the permissions backend and read-only
// once fetched.
type PermissionsDoc struct {
	ID     string              `json:"id"`
	Fields map[string][]string `json:"fields"`
}

// Values returns the actor list stored under the given field name. A
// missing field is an empty list, never an error.
func (d *PermissionsDoc) Values(field string) []string {
	if d == nil || d.Fields == nil {
		return nil
	}
	return d.Fields[field]
}
