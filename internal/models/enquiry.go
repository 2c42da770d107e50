package models

const EnquiryTable = "nac_cms_enquiry"

var Enquiry = &Entity{
	Name:    "Enquiry",
	Plural:  "Enquiries",
	Table:   EnquiryTable,
	Payload: "enquiry",
	Fields: []Field{
		{API: "id", Store: "id", Trim: true},
		{API: "title", Store: "title", Trim: true},
		{API: "description", Store: "description"},
		{API: "enquiry_status", Store: "enquiry_status"},
		{API: "deadline_date", Store: "deadline_date"},
		{API: "active_status", Store: "active_status"},
		{API: "created_date", Store: "created_date"},
		{API: "created_by", Store: "created_by"},
		{API: "modified_date", Store: "modified_date"},
		{API: "modified_by", Store: "modified_by"},
	},
	DenyList: []string{"id", "created_date", "created_by"},
	AddRules: map[string]interface{}{
		"title": "required",
	},
}
