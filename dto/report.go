package dto

// ReportForm is the multipart body of POST /user/report/. The image file is read separately.
type ReportForm struct {
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
	Location    string `form:"location"`
	Description string `form:"description"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
