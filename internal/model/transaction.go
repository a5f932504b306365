package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypePurchase   TxType = "purchase"
	TxTypeAdjustment TxType = "adjustment"
	TxTypeEvent      TxType = "event"
	TxTypeRedemption TxType = "redemption"
	TxTypeTransfer   TxType = "transfer"
)

// Transaction is an append-mostly ledger row. The type and actor columns are
// write-once; only Amount/Earned (through adjustments), Suspicious and
// Processed may change after creation.
//
// RelatedID depends on the type: the adjusted transaction for adjustments,
// the event for event awards, the counterparty user for transfers, the
// processing cashier for processed redemptions, the raffle for entry fees.
type Transaction struct {
	ID              uint64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UTORid          string           `gorm:"column:utorid;type:varchar(8);index;not null;<-:create"`
	Type            TxType           `gorm:"column:type;type:varchar(16);not null;<-:create"`
	Amount          int64            `gorm:"column:amount;not null"`
	Spent           *decimal.Decimal `gorm:"column:spent;type:decimal(10,2)"`
	Earned          *int64           `gorm:"column:earned"`
	Suspicious      bool             `gorm:"column:suspicious;not null;default:false"`
	Processed       *bool            `gorm:"column:processed"`
	RelatedID       *uint64          `gorm:"column:related_id"`
	CreatedByID     uint64           `gorm:"column:created_by_id;not null;<-:create"`
	SenderID        *uint64          `gorm:"column:sender_id;<-:create"`
	RecipientID     *uint64          `gorm:"column:recipient_id;<-:create"`
	Remark          string           `gorm:"column:remark;type:varchar(255)"`
	ReviewPublished bool             `gorm:"column:review_published;not null;default:false"`
	CreatedAt       time.Time        `gorm:"column:created_at"`

	Promotions []Promotion `gorm:"many2many:transaction_promotions"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// PromotionIDs returns the ids of the one-time promotions recorded on the row.
func (t *Transaction) PromotionIDs() []uint64 {
	ids := make([]uint64, 0, len(t.Promotions))
	for _, p := range t.Promotions {
		ids = append(ids, p.ID)
	}
	return ids
}
