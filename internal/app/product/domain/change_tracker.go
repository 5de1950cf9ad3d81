package domain

import (
	"maps"
	"slices"
)

// ChangeTracker records the fields modified on an aggregate together with
// their new values. The repo writes only dirty columns; the values become the
// product.updated event payload.
type ChangeTracker struct {
	values map[string]interface{}
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{values: make(map[string]interface{})}
}

// Record marks field dirty; a later Record of the same field overwrites v.
func (ct *ChangeTracker) Record(field string, v interface{}) {
	ct.values[field] = v
}

func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.values[field]
	return ok
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.values) > 0
}

// DirtyFields returns the modified field names, sorted.
func (ct *ChangeTracker) DirtyFields() []string {
	return slices.Sorted(maps.Keys(ct.values))
}

// Values returns a copy of field -> new value.
func (ct *ChangeTracker) Values() map[string]interface{} {
	return maps.Clone(ct.values)
}

// Merge folds other into ct.
func (ct *ChangeTracker) Merge(other *ChangeTracker) {
	maps.Copy(ct.values, other.values)
}
