package models

import (
	"testing"

	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestFromPayload_MapsAndTrims(t *testing.T) {
	got := Admin.FromPayload(map[string]any{
		"id":     "a1",
		"name":   "  Ravi ",
		"mobile": " 111 ",
		"role":   "super",
		"status": "active",
		"type":   "edit",
		"bogus":  "x",
	})

	assert.Equal(t, storage.Record{
		"id":            "a1",
		"name":          "Ravi",
		"mobile_number": "111",
		"admin_role":    "super",
		"job_status":    "active",
	}, got)
}

func TestFromPayload_VendorSecret(t *testing.T) {
	got := Vendor.FromPayload(map[string]any{"vendor_pass": " p ", "shop_mobile": "222"})

	assert.Equal(t, "p", got[PasswordField])
	assert.Equal(t, "222", got["mobile_number"])
}

func TestShape_HidesSecretAndMissing(t *testing.T) {
	out := Vendor.Shape(storage.Record{
		"id":            "v1",
		"vendor_name":   "Gold Works",
		"mobile_number": "111",
		"password":      "$2a$10$hash",
	})

	assert.Equal(t, map[string]any{
		"id":          "v1",
		"vendor_name": "Gold Works",
		"shop_mobile": "111",
	}, out)
}

func TestShapeAll(t *testing.T) {
	out := Service.ShapeAll([]storage.Record{
		{"id": "s1", "service_name": "Polish"},
		{"id": "s2", "service_name": "Repair"},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, "Repair", out[1]["service_name"])
}

func TestDenyListsCoverKeys(t *testing.T) {
	for _, e := range []*Entity{Admin, Vendor, Service, Enquiry} {
		assert.Contains(t, e.DenyList, "id", e.Name)
		if e.Secret != "" {
			assert.Contains(t, e.DenyList, PasswordField, e.Name)
		}
	}
}
