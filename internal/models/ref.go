package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ref points at another record. The backend sends either the bare id or the
// populated document; only the id and display name are kept.
type Ref struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name,omitempty"`
}

// RefTo builds a Ref from a hex id, returning the zero Ref for invalid input.
func RefTo(hexID, name string) Ref {
	id, _ := primitive.ObjectIDFromHex(hexID)
	return Ref{ID: id, Name: name}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var hexID string
		if err := json.Unmarshal(data, &hexID); err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return fmt.Errorf("reference %q: %w", hexID, err)
		}
		*r = Ref{ID: id}
		return nil
	}
	var doc struct {
		ID   primitive.ObjectID `json:"_id"`
		Name string             `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = Ref{ID: doc.ID, Name: doc.Name}
	return nil
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.ID.IsZero()
}

// ParseID validates a backend record id.
func ParseID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", hexID, err)
	}
	return id, nil
}
