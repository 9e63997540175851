package appwrite

import "encoding/json"

// query is the wire shape of one list-documents query string.
type query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func (q query) String() string {
	b, _ := json.Marshal(q) //nolint:errcheck // fixed shape, cannot fail
	return string(b)
}

// Equal builds an equality query against attr.
func Equal(attr string, value any) string {
	return query{Method: "equal", Attribute: attr, Values: []any{value}}.String()
}

// OrderDesc builds a descending sort on attr.
func OrderDesc(attr string) string {
	return query{Method: "orderDesc", Attribute: attr}.String()
}
