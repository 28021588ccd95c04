package shell

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"diet_tracker/internal/cache"
	"diet_tracker/internal/domain"
	"diet_tracker/internal/service"
	"diet_tracker/internal/session"
	"diet_tracker/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

type harness struct {
	store *storage.FileStore
	users *service.UserService
	meals *service.MealService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	users := service.NewUserService(store)
	meals := service.NewMealService(store, users, service.WithClock(func() time.Time { return fixedNow }))
	return &harness{store: store, users: users, meals: meals}
}

func (h *harness) run(t *testing.T, script []string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithSummaryStore(h.store)}, opts...)
	app := New(h.users, h.meals, strings.NewReader(strings.Join(script, "\n")+"\n"), &out, opts...)
	require.NoError(t, app.Run())
	return out.String()
}

var (
	registerAlice = []string{"2", "alice", "secret1"}
	loginAlice    = []string{"1", "alice", "secret1"}
	logTwoEggs    = []string{"1", "1", "egg", "70", "2", "pieces", "n"}
)

func script(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestRegisterLoginLogMealAndViewProgress(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, script(registerAlice, loginAlice, logTwoEggs, []string{"2", "10"}))

	assert.Contains(t, out, "Registration successful! You can now login.")
	assert.Contains(t, out, "Login successful! Welcome back, alice!")
	assert.Contains(t, out, "Added: egg (140 calories)")
	assert.Contains(t, out, "Meal logged successfully!")
	assert.Contains(t, out, "Date: 2024-06-10")
	assert.Contains(t, out, "Consumed: 140 calories")
	assert.Contains(t, out, "Remaining: 1860 calories")
	assert.Contains(t, out, "Progress: 7.0%")
	assert.Contains(t, out, "Breakfast: 140 calories")
	assert.Contains(t, out, "Thank you for using Diet Planner & Nutrition Tracker!")

	summaries, err := h.store.LoadDailySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 140, summaries[0].TotalCalories)
	assert.Equal(t, 2000, summaries[0].DailyGoal)
}

func TestRegisterRepromptsInvalidAndTakenUsernames(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))

	out := h.run(t, []string{"2", "al", "bad name", "alice", "bob_1", "short", "longenough", "3"})

	assert.Contains(t, out, "Username must be 3-20 characters long")
	assert.Contains(t, out, "Username already exists. Please choose a different one.")
	assert.Contains(t, out, "Password must be at least 6 characters long.")
	assert.Contains(t, out, "Registration successful!")
	assert.NotNil(t, h.users.Authenticate("bob_1", "longenough"))
}

func TestRegisteredPasswordWithCommaCanLogInAfterRestart(t *testing.T) {
	h := newHarness(t)
	h.run(t, []string{"2", "alice", "pass,word1", "3"})

	restarted := service.NewUserService(h.store)
	require.NotNil(t, restarted.FindByUsername("alice"))
	assert.NotNil(t, restarted.Authenticate("alice", "pass,word1"))
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, []string{"1", "ghost", "whatever", "3"})
	assert.Contains(t, out, "Invalid username or password. Please try again.")
}

func TestRunEndsCleanlyAtEndOfInput(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, []string{"1", "alice"})
	assert.Contains(t, out, "Thank you for using")
}

func TestFoodNameWithCommaIsRejected(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))
	out := h.run(t, script(loginAlice, []string{"1", "2", "rice,beans", "rice", "1", "200", "grams", "n", "10"}))

	assert.Contains(t, out, "Error: input cannot contain ','. Please try again.")
	meals := h.meals.MealsByUser("alice")
	require.Len(t, meals, 1)
	assert.Equal(t, domain.Lunch, meals[0].MealType)
	assert.Equal(t, 200, meals[0].TotalCalories())
}

func TestHistoryAndUndoLastMeal(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))
	out := h.run(t, script(loginAlice, logTwoEggs, []string{"3", "6", "y", "6", "10"}))

	assert.Contains(t, out, "2024-06-10:")
	assert.Contains(t, out, "12:00 - Breakfast (140 calories)")
	assert.Contains(t, out, "• egg - 2 pieces (140 calories)")
	assert.Contains(t, out, "Meal removed.")
	assert.Contains(t, out, "No meals found in your history.")
	assert.Empty(t, h.meals.MealsByUser("alice"))
}

func TestUpdateGoalAndStatistics(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))
	out := h.run(t, script(loginAlice, logTwoEggs, []string{"4", "0", "1400", "5", "1", "10"}))

	assert.Contains(t, out, "Current daily calorie goal: 2000 calories")
	assert.Contains(t, out, "Calorie goal updated successfully!")
	assert.Equal(t, 1400, h.users.FindByUsername("alice").DailyCalorieGoal)
	assert.Contains(t, out, "Statistics for the last 7 days:")
	assert.Contains(t, out, "Total meals logged: 1")
	assert.Contains(t, out, "Total calories consumed: 140")
	assert.Contains(t, out, "Average calories per day: 20.0")
	assert.Contains(t, out, "Average daily goal achievement: 1.4%")
}

func TestStatisticsAreCachedAndInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	stats := cache.NewStatsCache(rdb, cache.DefaultTTL)

	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))
	h.run(t, script(loginAlice, []string{"5", "1", "10"}), WithStatsCache(stats))
	assert.True(t, mr.Exists(cache.Key("alice", 7)))

	h.run(t, script(loginAlice, logTwoEggs, []string{"10"}), WithStatsCache(stats))
	assert.False(t, mr.Exists(cache.Key("alice", 7)))
}

func TestChangePasswordAndDeleteAccount(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))
	out := h.run(t, script(loginAlice,
		[]string{"7", "wrong1", "newpass1"},
		[]string{"7", "secret1", "newpass1"},
		[]string{"8", "y", "secret1"},
		[]string{"8", "y", "newpass1", "3"},
	))

	assert.Contains(t, out, "Failed to change password. Please check your current password.")
	assert.Contains(t, out, "Password changed successfully!")
	assert.Contains(t, out, "Failed to delete account. Please check your password.")
	assert.Contains(t, out, "Account deleted.")
	assert.Nil(t, h.users.FindByUsername("alice"))
}

func TestSessionIsResumedAndForgotten(t *testing.T) {
	dir := t.TempDir()
	sessions := session.NewManager(dir, "s3cret", time.Hour)
	h := newHarness(t)
	require.True(t, h.users.Register("alice", "secret1"))

	h.run(t, script(loginAlice, []string{"10"}), WithSessions(sessions))
	out := h.run(t, []string{"9", "3"}, WithSessions(sessions))
	assert.Contains(t, out, "Welcome back, alice! (session resumed)")
	assert.Contains(t, out, "Logged out successfully.")

	_, err := os.Stat(dir + "/" + session.FileName)
	assert.True(t, os.IsNotExist(err))

	out = h.run(t, []string{"3"}, WithSessions(sessions))
	assert.NotContains(t, out, "session resumed")
}

func TestWriteProgressTiers(t *testing.T) {
	meal := domain.NewMeal("alice", domain.Dinner, fixedNow)
	meal.AddFoodItem(domain.NewFoodItem("stew", 1, 950, "grams"))
	cases := map[int]string{
		900:  "You have exceeded your daily calorie goal!",
		1000: "Great job! You're close to your goal!",
		1300: "Good progress! Keep it up!",
		5000: "You still have room to reach your goal!",
	}
	for goal, want := range cases {
		var out bytes.Buffer
		writeProgress(&out, &domain.DailyLog{Username: "alice", Date: fixedNow, DailyCalorieGoal: goal, Meals: []domain.Meal{meal}})
		assert.Contains(t, out.String(), want, "goal %d", goal)
	}
}
