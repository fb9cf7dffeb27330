package request

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipping completed canceled"`
}
