package types

// Trip is one trip document. The upstream importer writes heterogeneous
// documents, so everything beyond the owning user is kept as a field map
// and resolved against ordered candidate field names at scoring time.
type Trip struct {
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

// Field returns the raw value for a field name, nil when absent.
func (t Trip) Field(name string) any {
	if t.Fields == nil {
		return nil
	}
	return t.Fields[name]
}
