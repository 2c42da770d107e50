package models

const VendorTable = "nac_cms_vendor"

var Vendor = &Entity{
	Name:    "Vendor",
	Plural:  "Vendors",
	Table:   VendorTable,
	Payload: "vendor",
	Fields: []Field{
		{API: "id", Store: "id", Trim: true},
		{API: "vendor_name", Store: "vendor_name", Trim: true},
		{API: "shop_mobile", Store: "mobile_number", Trim: true},
		{API: "vendor_pass", Store: PasswordField, Trim: true},
		{API: "shop_address", Store: "shop_address", Trim: true},
		{API: "category", Store: "category"},
		{API: "email", Store: "email", Trim: true},
		{API: "contact_number", Store: "contact_number"},
		{API: "contact_person", Store: "contact_person", Trim: true},
		{API: "pan", Store: "pan"},
		{API: "gst_number", Store: "gst_number"},
		{API: "fax", Store: "fax"},
		{API: "vendor_status", Store: "vendor_status"},
		{API: "created_date", Store: "created_date"},
		{API: "created_by", Store: "created_by"},
		{API: "modified_date", Store: "modified_date"},
		{API: "modified_by", Store: "modified_by"},
	},
	Unique: []UniqueField{
		{Store: "email", Message: "EMail Address already exists"},
		{Store: "mobile_number", Message: "Mobile Number already exists"},
	},
	DenyList:    []string{"id", "created_date", "created_by", PasswordField},
	Secret:      "vendor_pass",
	DisplayName: "vendor_name",
	AddRules: map[string]interface{}{
		"vendor_name": "required",
		"shop_mobile": "required",
		"email":       "required,email",
		"vendor_pass": "required",
	},
}
