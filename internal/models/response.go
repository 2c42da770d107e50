package models

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Response is the envelope every route answers with.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// AccountTables are the tables whose records can log in.
var AccountTables = map[string]*Entity{
	AdminTable:  Admin,
	VendorTable: Vendor,
}
