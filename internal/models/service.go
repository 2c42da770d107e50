package models

const ServiceTable = "nac_cms_service"

// Service is a vendor service category.
var Service = &Entity{
	Name:    "Service",
	Plural:  "Services",
	Table:   ServiceTable,
	Payload: "service",
	Fields: []Field{
		{API: "id", Store: "id", Trim: true},
		{API: "service_name", Store: "service_name", Trim: true},
	},
	Unique: []UniqueField{
		{Store: "service_name", Message: "Service Name already exists"},
	},
	DenyList: []string{"id"},
	AddRules: map[string]interface{}{
		"service_name": "required",
	},
}
