package service

import (
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/shopspring/decimal"
)

// Actor is the authenticated identity resolved by the request layer. A zero
// ID means the identity could not be resolved.
type Actor struct {
	ID     uint64
	UTORid string
	Role   model.Role
}

type CreatePurchaseCommand struct {
	Actor        Actor
	UTORid       string
	Spent        decimal.Decimal
	PromotionIDs []uint64
	Remark       string
}

type CreateAdjustmentCommand struct {
	Actor        Actor
	UTORid       string
	Amount       int64
	RelatedID    uint64
	PromotionIDs []uint64
	Remark       string
}

type CreateEventAwardCommand struct {
	Actor   Actor
	EventID uint64
	Amount  int64
	// UTORid selects a single guest; empty awards every guest of the event.
	UTORid string
	Remark string
}

type CreateRedemptionCommand struct {
	Actor  Actor
	Amount int64
	Remark string
}

type ProcessRedemptionCommand struct {
	Actor         Actor
	TransactionID uint64
}

type CreateTransferCommand struct {
	Actor Actor
	// Recipient is a numeric user id or a utorid.
	Recipient string
	Amount    int64
	Remark    string
}

type SetSuspiciousCommand struct {
	Actor         Actor
	TransactionID uint64
	Suspicious    bool
}

type CreateRaffleCommand struct {
	Actor       Actor
	Name        string
	PointCost   int64
	PrizePoints int64
	StartTime   time.Time
	EndTime     time.Time
	DrawTime    time.Time
}

type EnterRaffleCommand struct {
	Actor    Actor
	RaffleID uint64
}

type DrawRaffleCommand struct {
	Actor    Actor
	RaffleID uint64
}

type RegisterUserCommand struct {
	Actor  Actor
	UTORid string
	Name   string
	Email  string
}

type UpdateUserCommand struct {
	Actor      Actor
	UserID     uint64
	Email      *string
	Verified   *bool
	Suspicious *bool
	Role       *model.Role
}

type RequestPasswordResetCommand struct {
	UTORid string
}

type SetPasswordCommand struct {
	UTORid   string
	Password string
}

type CreatePromotionCommand struct {
	Actor       Actor
	Name        string
	Description string
	Type        model.PromotionType
	StartTime   time.Time
	EndTime     time.Time
	MinSpending decimal.Decimal
	Rate        decimal.Decimal
	Points      int64
}

type UpdatePromotionCommand struct {
	Actor       Actor
	PromotionID uint64
	Name        *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	MinSpending *decimal.Decimal
	Rate        *decimal.Decimal
	Points      *int64
}

type UpdateEventCommand struct {
	Actor       Actor
	EventID     uint64
	Name        *string
	Description *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
	Capacity    *int
	Published   *bool
	// Points resets the total pool; the remaining pool becomes
	// Points - PointsAwarded and may not go negative.
	Points *int64
}

type TransactionResult struct {
	ID           uint64           `json:"id"`
	UTORid       string           `json:"utorid"`
	Type         model.TxType     `json:"type"`
	Amount       int64            `json:"amount"`
	Spent        *decimal.Decimal `json:"spent,omitempty"`
	Earned       *int64           `json:"earned,omitempty"`
	Suspicious   bool             `json:"suspicious"`
	Processed    *bool            `json:"processed,omitempty"`
	RelatedID    *uint64          `json:"relatedId,omitempty"`
	SenderID     *uint64          `json:"senderId,omitempty"`
	RecipientID  *uint64          `json:"recipientId,omitempty"`
	PromotionIDs []uint64         `json:"promotionIds,omitempty"`
	Remark       string           `json:"remark,omitempty"`
	CreatedByID  uint64           `json:"createdBy"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// TransferResult exposes both materialized rows of one logical transfer.
type TransferResult struct {
	Sender    TransactionResult `json:"sender"`
	Recipient TransactionResult `json:"recipient"`
}

type EnterRaffleResult struct {
	EntryID       uint64            `json:"entryId"`
	RaffleID      uint64            `json:"raffleId"`
	Transaction   TransactionResult `json:"transaction"`
	PointsBalance int64             `json:"pointsBalance"`
}

type DrawRaffleResult struct {
	RaffleID    uint64            `json:"raffleId"`
	WinnerID    uint64            `json:"winnerId"`
	Transaction TransactionResult `json:"transaction"`
}

func newTransactionResult(tx *model.Transaction) TransactionResult {
	return TransactionResult{
		ID:           tx.ID,
		UTORid:       tx.UTORid,
		Type:         tx.Type,
		Amount:       tx.Amount,
		Spent:        tx.Spent,
		Earned:       tx.Earned,
		Suspicious:   tx.Suspicious,
		Processed:    tx.Processed,
		RelatedID:    tx.RelatedID,
		SenderID:     tx.SenderID,
		RecipientID:  tx.RecipientID,
		PromotionIDs: tx.PromotionIDs(),
		Remark:       tx.Remark,
		CreatedByID:  tx.CreatedByID,
		CreatedAt:    tx.CreatedAt,
	}
}
