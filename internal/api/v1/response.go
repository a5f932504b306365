package v1

import (
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID         uint64    `json:"id"`
	UTORid     string    `json:"utorid"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Points     int64     `json:"points"`
	Verified   bool      `json:"verified"`
	Suspicious bool      `json:"suspicious"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		UTORid:     u.UTORid,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.String(),
		Points:     u.Points,
		Verified:   u.Verified,
		Suspicious: u.Suspicious,
		CreatedAt:  u.CreatedAt,
	}
}

type PromotionResponse struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	MinSpending decimal.Decimal `json:"minSpending"`
	Rate        decimal.Decimal `json:"rate"`
	Points      int64           `json:"points"`
}

func newPromotionResponse(p *model.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		MinSpending: p.MinSpending,
		Rate:        p.Rate,
		Points:      p.Points,
	}
}

type EventResponse struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Capacity      *int      `json:"capacity,omitempty"`
	PointsRemain  int64     `json:"pointsRemain"`
	PointsAwarded int64     `json:"pointsAwarded"`
	Published     bool      `json:"published"`
}

func newEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Location:      e.Location,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Capacity:      e.Capacity,
		PointsRemain:  e.PointsRemain,
		PointsAwarded: e.PointsAwarded,
		Published:     e.Published,
	}
}

type RaffleResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	PointCost   int64     `json:"pointCost"`
	PrizePoints int64     `json:"prizePoints"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	DrawTime    time.Time `json:"drawTime"`
	Drawn       bool      `json:"drawn"`
	WinnerID    *uint64   `json:"winnerId,omitempty"`
}

func newRaffleResponse(r *model.Raffle) RaffleResponse {
	return RaffleResponse{
		ID:          r.ID,
		Name:        r.Name,
		PointCost:   r.PointCost,
		PrizePoints: r.PrizePoints,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		DrawTime:    r.DrawTime,
		Drawn:       r.Drawn,
		WinnerID:    r.WinnerID,
	}
}
