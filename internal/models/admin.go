package models

const AdminTable = "nac_cms_admin"

var Admin = &Entity{
	Name:    "Admin",
	Plural:  "Admins",
	Table:   AdminTable,
	Payload: "admin",
	Fields: []Field{
		{API: "id", Store: "id", Trim: true},
		{API: "name", Store: "name", Trim: true},
		{API: "mobile", Store: "mobile_number", Trim: true},
		{API: "email", Store: "email", Trim: true},
		{API: "password", Store: PasswordField, Trim: true},
		{API: "role", Store: "admin_role"},
		{API: "status", Store: "job_status"},
		{API: "createdOn", Store: "createdOn"},
	},
	Unique: []UniqueField{
		{Store: "email", Message: "EMail Address already exists"},
		{Store: "mobile_number", Message: "Mobile Number already exists"},
	},
	DenyList:    []string{"id", "createdOn", PasswordField},
	Secret:      "password",
	DisplayName: "name",
	AddRules: map[string]interface{}{
		"name":     "required",
		"mobile":   "required",
		"email":    "required,email",
		"password": "required",
	},
}
