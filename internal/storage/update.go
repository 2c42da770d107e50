package storage

import (
	"sort"
)

// Assignment sets a single attribute to a value.
type Assignment struct {
	Field string
	Value any
}

// UpdateInstruction is a partial update of one record. Drivers turn it into
// their own parameterized form; field names are never spliced into a query.
type UpdateInstruction struct {
	ID  string
	Set []Assignment
}

// Fields returns the assigned attributes as a Record.
func (u *UpdateInstruction) Fields() Record {
	out := make(Record, len(u.Set))
	for _, a := range u.Set {
		out[a.Field] = a.Value
	}
	return out
}

// BuildUpdate produces a partial update for id from fields. The key
// attribute and every name in denyList are dropped without error. When
// nothing is left, ErrNothingToUpdate is returned. Assignments are ordered
// by field name so equal inputs give equal instructions.
func BuildUpdate(id string, fields Record, denyList []string) (*UpdateInstruction, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	denied := make(map[string]struct{}, len(denyList)+1)
	denied[KeyField] = struct{}{}
	for _, name := range denyList {
		denied[name] = struct{}{}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, skip := denied[name]; skip || name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrNothingToUpdate
	}
	sort.Strings(names)

	u := &UpdateInstruction{ID: id, Set: make([]Assignment, 0, len(names))}
	for _, name := range names {
		u.Set = append(u.Set, Assignment{Field: name, Value: fields[name]})
	}
	return u, nil
}

// SetField builds an instruction for a single attribute, bypassing any
// deny-list. It is reserved for dedicated flows such as password changes.
func SetField(id, field string, value any) *UpdateInstruction {
	return &UpdateInstruction{ID: id, Set: []Assignment{{Field: field, Value: value}}}
}
