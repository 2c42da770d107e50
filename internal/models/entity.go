package models

import (
	"strings"

	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
)

// Field maps an API-facing attribute to its storage attribute.
type Field struct {
	API   string
	Store string
	Trim  bool
}

// UniqueField is an attribute checked by the uniqueness gate.
type UniqueField struct {
	Store   string
	Message string
}

// Entity describes one table of the admin console.
type Entity struct {
	Name     string
	Plural   string
	Table    string
	Payload  string
	Fields   []Field
	Unique   []UniqueField
	DenyList []string
	// Secret is the API name of the password attribute, if any. It is
	// stored hashed under "password" and never returned.
	Secret string
	// DisplayName is the storage attribute greeted on login and in OTP messages.
	DisplayName string
	// AddRules are validator tags keyed by API name, checked on add.
	AddRules map[string]interface{}
}

const PasswordField = "password"

// FromPayload translates an API payload to storage attributes. Unknown keys
// are dropped and string values of trimmed fields are trimmed.
func (e *Entity) FromPayload(payload map[string]any) storage.Record {
	out := make(storage.Record, len(payload))
	for _, f := range e.Fields {
		v, ok := payload[f.API]
		if !ok {
			continue
		}
		if s, isString := v.(string); isString && f.Trim {
			v = strings.TrimSpace(s)
		}
		out[f.Store] = v
	}
	return out
}

// Shape renders a stored record with API names. The secret and attributes
// missing from the record are omitted.
func (e *Entity) Shape(r storage.Record) map[string]any {
	out := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		if f.Store == PasswordField {
			continue
		}
		if v, ok := r[f.Store]; ok {
			out[f.API] = v
		}
	}
	return out
}

func (e *Entity) ShapeAll(records []storage.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, e.Shape(r))
	}
	return out
}
