package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Reference is a lookup field on an upstream CRM record. The API is not
// consistent about its shape: the same field can arrive as a structured
// object ({"id": ..., "name": ...}), a bare string, or null. Reference
// absorbs all three so that resolution happens in exactly one place.
type Reference struct {
	ID     string
	Name   string
	Module string

	present bool
}

type referenceObject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Module   string `json:"module"`
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Reference{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = Reference{Name: s, present: true}
		return nil
	case '{':
		var obj referenceObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		name := obj.Name
		if name == "" {
			name = obj.FullName
		}
		*r = Reference{ID: obj.ID, Name: name, Module: obj.Module, present: true}
		return nil
	default:
		// Numbers, booleans and other scalars are taken verbatim.
		*r = Reference{Name: string(trimmed), present: true}
		return nil
	}
}

func (r Reference) MarshalJSON() ([]byte, error) {
	if !r.present {
		return []byte("null"), nil
	}
	return json.Marshal(r.Name)
}

// Present reports whether the upstream record carried the field at all.
func (r Reference) Present() bool { return r.present }

// DisplayName resolves the reference to a non-empty display string.
// Absent references resolve to absentFallback; references that are
// present but carry no usable name resolve to "Unknown".
func (r Reference) DisplayName(absentFallback string) string {
	if !r.present {
		return absentFallback
	}
	if strings.TrimSpace(r.Name) == "" {
		return NameUnknown
	}
	return r.Name
}

// ReferenceNames flattens a list of references (tag lists and similar)
// into their display names, skipping unusable entries.
func ReferenceNames(refs []Reference) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !ref.present || strings.TrimSpace(ref.Name) == "" {
			continue
		}
		names = append(names, ref.Name)
	}
	return names
}
