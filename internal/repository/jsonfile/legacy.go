package jsonfile

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UnmarshalJSON reads a user whose profile fields were stored with whatever
// JSON type the client sent, such as "age":"20" or "course":2. A mistyped
// field must not fail the whole document.
func (r *userRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        int64           `json:"id"`
		Email     string          `json:"email"`
		Password  string          `json:"password"`
		Avatar    *string         `json:"avatar"`
		Name      json.RawMessage `json:"name"`
		Age       json.RawMessage `json:"age"`
		Gender    json.RawMessage `json:"gender"`
		Faculty   json.RawMessage `json:"faculty"`
		Course    json.RawMessage `json:"course"`
		Interests json.RawMessage `json:"interests"`
		About     json.RawMessage `json:"about"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = userRecord{PasswordHash: raw.Password}
	r.ID = raw.ID
	r.Email = raw.Email
	r.Avatar = raw.Avatar
	r.Name = looseString(raw.Name)
	r.Age = looseInt(raw.Age)
	r.Gender = looseString(raw.Gender)
	r.Faculty = looseString(raw.Faculty)
	r.Course = looseString(raw.Course)
	r.Interests = looseStrings(raw.Interests)
	r.About = looseString(raw.About)
	return nil
}

// looseString returns strings as is and numbers or booleans as their literal
// text. Anything else reads as empty.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// looseInt accepts a number or a numeric string. Fractions are truncated and
// anything unparsable reads as zero.
func looseInt(raw json.RawMessage) int {
	s := strings.TrimSpace(looseString(raw))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// looseStrings accepts an array (elements read with looseString, empties
// dropped) or a single non-empty string.
func looseStrings(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	out := []string{}
	if len(raw) == 0 {
		return out
	}

	if raw[0] != '[' {
		if s := looseString(raw); s != "" && raw[0] == '"' {
			out = append(out, s)
		}
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s := looseString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
