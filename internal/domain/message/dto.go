package message

type CreateMessageRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Phone     string `json:"phone" binding:"max=50"`
	Message   string `json:"message" binding:"required,max=2000"`
	VehicleID *int64 `json:"vehicle_id" binding:"omitempty,min=1"`
}

type UpdateMessageRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Message       *string `json:"message" binding:"omitempty,max=2000"`
	VehicleID     *int64  `json:"vehicle_id" binding:"omitempty,min=1"`
	ResponsibleID *int64  `json:"responsible_id" binding:"omitempty,min=1"`
	Status        *Status `json:"status"`
}

type StartServiceRequest struct {
	ResponsibleID int64 `json:"responsible_id" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type ListFilters struct {
	Status        *Status `form:"status"`
	ResponsibleID *int64  `form:"responsible_id"`
	VehicleID     *int64  `form:"vehicle_id"`
	Page          int     `form:"page" binding:"omitempty,min=1"`
	Limit         int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Messages   []Message `json:"messages"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
