package model

import "time"

// Role is the clearance level of a user. Higher values include every
// permission of the lower ones.
type Role int

const (
	RoleRegular Role = iota
	RoleCashier
	RoleManager
	RoleSuperuser
)

func (r Role) String() string {
	switch r {
	case RoleRegular:
		return "regular"
	case RoleCashier:
		return "cashier"
	case RoleManager:
		return "manager"
	case RoleSuperuser:
		return "superuser"
	default:
		return "unknown"
	}
}

func ParseRole(s string) (Role, bool) {
	switch s {
	case "regular":
		return RoleRegular, true
	case "cashier":
		return RoleCashier, true
	case "manager":
		return RoleManager, true
	case "superuser":
		return RoleSuperuser, true
	default:
		return RoleRegular, false
	}
}

func (r Role) AtLeast(required Role) bool {
	return r >= required
}

// SystemUTORid names the seeded internal account that owns scheduled work
// such as raffle sweeps. It is shorter than a real UTORid, so it can never
// collide with a registered user, and the identity middleware refuses it.
const SystemUTORid = "system"

// User carries the materialized points balance. Every change to Points goes
// through a ledger row in the same transaction, so the column always equals
// the replayed ledger balance.
type User struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement;column:id"`
	UTORid           string     `gorm:"column:utorid;type:varchar(8);uniqueIndex;not null;<-:create"`
	Name             string     `gorm:"column:name;type:varchar(50);not null"`
	Email            string     `gorm:"column:email;type:varchar(100);uniqueIndex;not null"`
	Role             Role       `gorm:"column:role;type:tinyint;not null;default:0"`
	Points           int64      `gorm:"column:points;not null;default:0"`
	Verified         bool       `gorm:"column:verified;not null;default:false"`
	Suspicious       bool       `gorm:"column:suspicious;not null;default:false"`
	PasswordHash     *string    `gorm:"column:password_hash;type:varchar(255)"`
	ResetRequestedAt *time.Time `gorm:"column:reset_requested_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
