package domain

import "time"

type Match struct {
	ID          int64     `json:"id" db:"id"`
	User1ID     int64     `json:"user1" db:"user1_id"`
	User2ID     int64     `json:"user2" db:"user2_id"`
	Icebreakers []string  `json:"icebreakers,omitempty" db:"icebreakers"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

func (m *Match) HasUser(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// IsPair reports whether the match joins a and b, in either order.
func (m *Match) IsPair(a, b int64) bool {
	return (m.User1ID == a && m.User2ID == b) || (m.User1ID == b && m.User2ID == a)
}

func (m *Match) GetOtherUserID(userID int64) (int64, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}
