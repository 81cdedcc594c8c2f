package domain

import (
	"bytes"
	"encoding/json"
)

// OwnerPartition groups records of one entity type by owner name. Owner
// keys keep first-seen order and each owner's list keeps upstream record
// order, so rendering the same upstream data twice yields the same layout.
//
// An empty partition is not an error: it means the upstream module had no
// records. It marshals as {<emptyKey>: []} (for example {"No Deals": []})
// because the dashboard UI special-cases that key before treating the
// mapping as data.
type OwnerPartition[T any] struct {
	emptyKey string
	owners   []string
	records  map[string][]T
}

func NewOwnerPartition[T any](emptyKey string) *OwnerPartition[T] {
	return &OwnerPartition[T]{
		emptyKey: emptyKey,
		records:  map[string][]T{},
	}
}

// Add appends a record to its owner's list, registering the owner on
// first sight.
func (p *OwnerPartition[T]) Add(owner string, record T) {
	if _, ok := p.records[owner]; !ok {
		p.owners = append(p.owners, owner)
	}
	p.records[owner] = append(p.records[owner], record)
}

// Owners returns the owner keys in first-seen order.
func (p *OwnerPartition[T]) Owners() []string {
	out := make([]string, len(p.owners))
	copy(out, p.owners)
	return out
}

// Records returns the record list for one owner, nil if the owner is not
// part of the partition.
func (p *OwnerPartition[T]) Records(owner string) []T {
	return p.records[owner]
}

// Len is the total number of records across all owners.
func (p *OwnerPartition[T]) Len() int {
	total := 0
	for _, recs := range p.records {
		total += len(recs)
	}
	return total
}

// Empty reports whether the upstream fetch produced zero records.
func (p *OwnerPartition[T]) Empty() bool { return len(p.owners) == 0 }

// EmptyKey is the sentinel partition key for this entity type.
func (p *OwnerPartition[T]) EmptyKey() string { return p.emptyKey }

// Flatten concatenates all owners' records in partition order.
func (p *OwnerPartition[T]) Flatten() []T {
	out := make([]T, 0, p.Len())
	for _, owner := range p.owners {
		out = append(out, p.records[owner]...)
	}
	return out
}

// Filter returns a new partition containing only records accepted by
// keep. Owners whose lists end up empty are dropped.
func (p *OwnerPartition[T]) Filter(keep func(T) bool) *OwnerPartition[T] {
	out := NewOwnerPartition[T](p.emptyKey)
	for _, owner := range p.owners {
		for _, rec := range p.records[owner] {
			if keep(rec) {
				out.Add(owner, rec)
			}
		}
	}
	return out
}

// Select returns a new partition restricted to the given owner keys,
// preserving this partition's owner order. Unknown owners are ignored.
func (p *OwnerPartition[T]) Select(owners ...string) *OwnerPartition[T] {
	wanted := make(map[string]struct{}, len(owners))
	for _, o := range owners {
		wanted[o] = struct{}{}
	}

	out := NewOwnerPartition[T](p.emptyKey)
	for _, owner := range p.owners {
		if _, ok := wanted[owner]; !ok {
			continue
		}
		for _, rec := range p.records[owner] {
			out.Add(owner, rec)
		}
	}
	return out
}

// MarshalJSON renders the partition as an object keyed by owner, keys in
// partition order. Empty partitions render as {<emptyKey>: []}.
func (p *OwnerPartition[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if p.Empty() {
		key, err := json.Marshal(p.emptyKey)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":[]}")
		return buf.Bytes(), nil
	}

	for i, owner := range p.owners {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(owner)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		recs, err := json.Marshal(p.records[owner])
		if err != nil {
			return nil, err
		}
		buf.Write(recs)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
