package domain

import "time"

type Message struct {
	ID        int64     `json:"id" db:"id"`
	MatchID   int64     `json:"matchId" db:"match_id"`
	SenderID  int64     `json:"sender" db:"sender_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
