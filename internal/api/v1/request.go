package v1

type CreatePurchaseRequest struct {
	UTORid       string   `json:"utorid" validate:"required,utorid"`
	Spent        string   `json:"spent" validate:"required,money"`
	PromotionIDs []uint64 `json:"promotionIds" validate:"omitempty,dive,min=1"`
	Remark       string   `json:"remark" validate:"max=255"`
}

type CreateAdjustmentRequest struct {
	UTORid    string `json:"utorid" validate:"required,utorid"`
	Amount    int64  `json:"amount" validate:"required"`
	RelatedID uint64 `json:"relatedId" validate:"required,min=1"`
	Remark    string `json:"remark" validate:"max=255"`
}

type CreateEventAwardRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	UTORid string `json:"utorid" validate:"omitempty,utorid"`
	Remark string `json:"remark" validate:"max=255"`
}

type CreateRedemptionRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	Remark string `json:"remark" validate:"max=255"`
}

type CreateTransferRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	Remark string `json:"remark" validate:"max=255"`
}

type SetSuspiciousRequest struct {
	Suspicious *bool `json:"suspicious" validate:"required"`
}

type ProcessRedemptionRequest struct {
	Processed *bool `json:"processed" validate:"required,eq=true"`
}

type RegisterUserRequest struct {
	UTORid string `json:"utorid" validate:"required,utorid"`
	Name   string `json:"name" validate:"required,max=50"`
	Email  string `json:"email" validate:"required,email,max=100"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email" validate:"omitempty,email,max=100"`
	Verified   *bool   `json:"verified"`
	Suspicious *bool   `json:"suspicious"`
	Role       *string `json:"role" validate:"omitempty,oneof=regular cashier manager superuser"`
}

type LoginRequest struct {
	UTORid   string `json:"utorid" validate:"required,utorid"`
	Password string `json:"password" validate:"required"`
}

type RequestPasswordResetRequest struct {
	UTORid string `json:"utorid" validate:"required,utorid"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=20"`
}

type CreatePromotionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
	Type        string `json:"type" validate:"required,oneof=automatic onetime"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	MinSpending string `json:"minSpending" validate:"omitempty,money"`
	Rate        string `json:"rate" validate:"omitempty"`
	Points      int64  `json:"points" validate:"min=0"`
}

type UpdatePromotionRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	MinSpending *string `json:"minSpending" validate:"omitempty,money"`
	Rate        *string `json:"rate"`
	Points      *int64  `json:"points" validate:"omitempty,min=0"`
}

type UpdateEventRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
	Published   *bool   `json:"published"`
	Points      *int64  `json:"points" validate:"omitempty,min=0"`
}

type CreateRaffleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	PointCost   int64  `json:"pointCost" validate:"min=0"`
	PrizePoints int64  `json:"prizePoints" validate:"required,min=1"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	DrawTime    string `json:"drawTime" validate:"required"`
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
	Location    string `json:"location" validate:"max=100"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Capacity    *int   `json:"capacity" validate:"omitempty,min=1"`
	Points      int64  `json:"points" validate:"required,min=1"`
}
