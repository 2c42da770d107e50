package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = "nac_cms_vendor"

func seedVendor(t *testing.T, s *InMemoryStorage) Record {
	t.Helper()
	r := Record{
		"id":            "v1",
		"vendor_name":   "Old Name",
		"email":         "a@x.com",
		"mobile_number": "111",
		"password":      "$2a$10$hash",
		"created_date":  "2024-01-01",
		"created_by":    "admin",
	}
	require.NoError(t, s.Put(context.Background(), testTable, r))
	return r
}

func TestInMemory_UpdatePreservesUntouchedFields(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	original := seedVendor(t, s)

	u, err := BuildUpdate("v1", Record{"vendor_name": "New Name", "mobile_number": "999"}, vendorDeny)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, testTable, u))

	got, err := s.Get(ctx, testTable, "v1")
	require.NoError(t, err)

	assert.Equal(t, "New Name", got["vendor_name"])
	assert.Equal(t, "999", got["mobile_number"])
	for _, k := range []string{"id", "email", "password", "created_date", "created_by"} {
		assert.Equal(t, original[k], got[k], k)
	}
}

func TestInMemory_DeniedFieldsNeverChange(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	original := seedVendor(t, s)

	payloads := []Record{
		{"id": "v2", "vendor_name": "n"},
		{"password": "hack", "vendor_name": "n"},
		{"created_date": "1999-01-01", "created_by": "eve", "vendor_name": "n"},
	}
	for _, p := range payloads {
		u, err := BuildUpdate("v1", p, vendorDeny)
		require.NoError(t, err)
		require.NoError(t, s.Update(ctx, testTable, u))
	}

	got, err := s.Get(ctx, testTable, "v1")
	require.NoError(t, err)
	for _, k := range vendorDeny {
		assert.Equal(t, original[k], got[k], k)
	}
}

func TestInMemory_UpdateMissing(t *testing.T) {
	s := NewInMemoryStorage()
	err := s.Update(context.Background(), testTable, SetField("nope", "vendor_name", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemory_PutOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	seedVendor(t, s)

	require.NoError(t, s.Put(ctx, testTable, Record{"id": "v1", "vendor_name": "Only"}))

	got, err := s.Get(ctx, testTable, "v1")
	require.NoError(t, err)
	assert.Equal(t, Record{"id": "v1", "vendor_name": "Only"}, got)
}

func TestInMemory_PutRequiresID(t *testing.T) {
	s := NewInMemoryStorage()
	assert.ErrorIs(t, s.Put(context.Background(), testTable, Record{"name": "x"}), ErrMissingID)
}

func TestInMemory_ScanAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	require.NoError(t, s.Put(ctx, testTable, Record{"id": "b"}))
	require.NoError(t, s.Put(ctx, testTable, Record{"id": "a"}))

	all, err := s.Scan(ctx, testTable)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID())

	old, err := s.Delete(ctx, testTable, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", old.ID())

	_, err = s.Delete(ctx, testTable, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, testTable, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := s.Scan(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	seedVendor(t, s)

	got, err := s.Get(ctx, testTable, "v1")
	require.NoError(t, err)
	got["vendor_name"] = "mutated"

	again, err := s.Get(ctx, testTable, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", again["vendor_name"])
}
