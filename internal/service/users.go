package service

import (
	"strings" // String trimming

	"diet_tracker/internal/domain" // Record types

	"github.com/sirupsen/logrus" // Logging library
)

// UserStore persists the full user list
type UserStore interface {
	LoadUsers() ([]domain.User, error)
	SaveUsers(users []domain.User) error
}

// UserService is the in-memory user directory, written through to its store after every change
type UserService struct {
	store UserStore      // Backing storage
	users []*domain.User // Directory in registration order
}

// NewUserService loads the directory from store. A load failure is logged and yields an empty directory.
func NewUserService(store UserStore) *UserService {
	s := &UserService{store: store}
	users, err := store.LoadUsers()
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to load users")
	}
	for i := range users {
		u := users[i]
		s.users = append(s.users, &u)
	}
	return s
}

// Register creates a user with the default calorie goal.
// It fails on a blank username or password and on a duplicate username.
func (s *UserService) Register(username, password string) bool {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return false
	}
	if s.FindByUsername(username) != nil {
		return false // Username already exists
	}
	s.users = append(s.users, domain.NewUser(username, password))
	s.persist()
	logrus.WithField("username", username).Info("User registered")
	return true
}

// Authenticate returns the stored user when the trimmed password matches exactly
func (s *UserService) Authenticate(username, password string) *domain.User {
	user := s.FindByUsername(username)
	if user != nil && user.Password == strings.TrimSpace(password) {
		return user
	}
	return nil
}

// FindByUsername looks up a user by trimmed, case-sensitive username
func (s *UserService) FindByUsername(username string) *domain.User {
	username = strings.TrimSpace(username)
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// UpdateCalorieGoal sets a new positive goal for an existing user
func (s *UserService) UpdateCalorieGoal(username string, newGoal int) bool {
	if newGoal <= 0 {
		return false
	}
	user := s.FindByUsername(username)
	if user == nil {
		return false
	}
	user.DailyCalorieGoal = newGoal
	s.persist()
	logrus.WithFields(logrus.Fields{
		"username": user.Username, // Username
		"goal":     newGoal,       // New daily goal
	}).Info("Calorie goal updated")
	return true
}

// ChangePassword replaces the password after re-authenticating with the old one
func (s *UserService) ChangePassword(username, oldPassword, newPassword string) bool {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return false
	}
	user := s.Authenticate(username, oldPassword)
	if user == nil {
		return false
	}
	user.Password = newPassword
	s.persist()
	logrus.WithField("username", user.Username).Info("Password changed")
	return true
}

// DeleteUser removes a user from the directory. Their meals are kept.
func (s *UserService) DeleteUser(username string) bool {
	username = strings.TrimSpace(username)
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.persist()
			logrus.WithField("username", username).Info("User deleted")
			return true
		}
	}
	return false
}

// Users returns a copy of every user
func (s *UserService) Users() []domain.User {
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = *u
	}
	return out
}

// persist rewrites the whole directory. Errors are logged and swallowed, memory is not rolled back.
func (s *UserService) persist() {
	if err := s.store.SaveUsers(s.Users()); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to save users")
	}
}
