package model

import "time"

// Raffle is terminal once Drawn is set; WinnerID and Drawn never change back.
type Raffle struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name        string    `gorm:"column:name;type:varchar(100);not null"`
	PointCost   int64     `gorm:"column:point_cost;not null"`
	PrizePoints int64     `gorm:"column:prize_points;not null"`
	StartTime   time.Time `gorm:"column:start_time;not null"`
	EndTime     time.Time `gorm:"column:end_time;not null"`
	DrawTime    time.Time `gorm:"column:draw_time;not null"`
	Drawn       bool      `gorm:"column:drawn;not null;default:false"`
	WinnerID    *uint64   `gorm:"column:winner_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Raffle) TableName() string {
	return "raffles"
}

type RaffleEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	RaffleID  uint64    `gorm:"column:raffle_id;not null;index:idx_raffle_user,unique;<-:create"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_raffle_user,unique;<-:create"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RaffleEntry) TableName() string {
	return "raffle_entries"
}
