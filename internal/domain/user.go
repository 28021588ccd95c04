package domain

// DefaultCalorieGoal is the daily goal given to newly registered users
const DefaultCalorieGoal = 2000

// User Model
type User struct {
	Username         string // Unique, case-sensitive, trimmed
	Password         string // Stored as plain text
	DailyCalorieGoal int    // Target calories per day, always > 0
}

// NewUser creates a user with the default calorie goal
func NewUser(username, password string) *User {
	return &User{Username: username, Password: password, DailyCalorieGoal: DefaultCalorieGoal}
}
