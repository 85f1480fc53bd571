package dto

type SignupRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Mpin         string `json:"mpin" binding:"required"`
}
type LoginRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
	Mpin         string `json:"mpin" binding:"required"`
}
