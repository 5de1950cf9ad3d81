package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeTracker(t *testing.T) {
	ct := NewChangeTracker()
	assert.False(t, ct.HasChanges())

	ct.Record(FieldPrice, "10.00")
	ct.Record(FieldName, "a")
	ct.Record(FieldPrice, "12.00")

	assert.True(t, ct.Dirty(FieldPrice))
	assert.False(t, ct.Dirty(FieldBrand))
	assert.Equal(t, []string{FieldName, FieldPrice}, ct.DirtyFields())

	vals := ct.Values()
	assert.Equal(t, "12.00", vals[FieldPrice])
	vals[FieldBrand] = "x"
	assert.False(t, ct.Dirty(FieldBrand))

	other := NewChangeTracker()
	other.Record(FieldRating, 4.5)
	ct.Merge(other)
	assert.Equal(t, []string{FieldName, FieldPrice, FieldRating}, ct.DirtyFields())
}
