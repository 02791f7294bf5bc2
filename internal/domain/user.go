package domain

// User is a registered account together with its profile fields.
type User struct {
	ID           int64    `json:"id" db:"id"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Name         string   `json:"name" db:"name"`
	Avatar       *string  `json:"avatar" db:"avatar"`
	Age          int      `json:"age" db:"age"`
	Gender       string   `json:"gender" db:"gender"`
	Faculty      string   `json:"faculty" db:"faculty"`
	Course       string   `json:"course" db:"course"`
	Interests    []string `json:"interests" db:"interests"`
	About        string   `json:"about" db:"about"`
}

// UserPublic is everything about a user except credentials.
type UserPublic struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Avatar    *string  `json:"avatar"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Faculty   string   `json:"faculty"`
	Course    string   `json:"course"`
	Interests []string `json:"interests"`
	About     string   `json:"about"`
}

// UserSummary is the card shown in the discovery feed.
type UserSummary struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Avatar  *string `json:"avatar"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Faculty string  `json:"faculty"`
}

func (u *User) Public() *UserPublic {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return &UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Age:       u.Age,
		Gender:    u.Gender,
		Faculty:   u.Faculty,
		Course:    u.Course,
		Interests: interests,
		About:     u.About,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Avatar:  u.Avatar,
		Age:     u.Age,
		Gender:  u.Gender,
		Faculty: u.Faculty,
	}
}
