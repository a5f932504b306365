package model

import "time"

// Event carries a conserved points pool: PointsRemain only decreases and
// PointsAwarded only increases, and their sum stays fixed between edits.
type Event struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name          string     `gorm:"column:name;type:varchar(100);not null"`
	Description   string     `gorm:"column:description;type:varchar(500)"`
	Location      string     `gorm:"column:location;type:varchar(100)"`
	StartTime     time.Time  `gorm:"column:start_time;not null"`
	EndTime       time.Time  `gorm:"column:end_time;not null"`
	Capacity      *int       `gorm:"column:capacity"`
	PointsRemain  int64      `gorm:"column:points_remain;not null;default:0"`
	PointsAwarded int64      `gorm:"column:points_awarded;not null;default:0"`
	Published     bool       `gorm:"column:published;not null;default:false"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`

	Guests     []User `gorm:"many2many:event_guests"`
	Organizers []User `gorm:"many2many:event_organizers"`
}

func (Event) TableName() string {
	return "events"
}
