package domain

import "time"

// SwipeLike is the only swipe type the match engine interprets; any other
// value is recorded as-is.
const SwipeLike = "like"

type Swipe struct {
	ID        int64     `json:"id" db:"id"`
	From      int64     `json:"from" db:"from_user_id"`
	To        int64     `json:"to" db:"to_user_id"`
	Type      string    `json:"type" db:"swipe_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (s *Swipe) IsLike() bool {
	return s.Type == SwipeLike
}
