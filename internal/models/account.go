package models

import "encoding/json"

type LoginRequest struct {
	TableName    string `json:"tableName" validate:"required,oneof=nac_cms_admin nac_cms_vendor"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type VerifyRequest struct {
	TableName    string `json:"tableName" validate:"required,oneof=nac_cms_admin nac_cms_vendor"`
	MobileNumber string `json:"mobile_number" validate:"required"`
}

type ForgotPasswordRequest struct {
	TableName string `json:"tableName" validate:"required,oneof=nac_cms_admin nac_cms_vendor"`
	ID        string `json:"id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	// OTP is accepted both as a JSON number and as a string.
	OTP json.Number `json:"otp" validate:"required,len=4,numeric"`
}

type ChangePasswordRequest struct {
	Request struct {
		ID          string `json:"id" validate:"required"`
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required"`
		TableName   string `json:"tableName" validate:"required,oneof=nac_cms_admin nac_cms_vendor"`
	} `json:"request"`
}
