package shell

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"fmt"     // Output formatting
	"io"      // Writer and EOF
	"time"    // Current date

	"diet_tracker/internal/cache"   // Statistics cache
	"diet_tracker/internal/domain"  // Record types
	"diet_tracker/internal/service" // User directory and meal ledger
	"diet_tracker/internal/session" // Remembered logins

	"github.com/sirupsen/logrus" // Logging library
)

// errQuit ends the REPL normally
var errQuit = errors.New("quit")

// SummaryStore records daily summaries
type SummaryStore interface {
	UpsertDailySummary(summary domain.DailySummary) error
}

// App is the interactive console
type App struct {
	users     *service.UserService // User directory
	meals     *service.MealService // Meal ledger
	prompt    *Prompter            // Validated input
	out       io.Writer            // Console output
	summaries SummaryStore         // Optional daily summary sink
	stats     *cache.StatsCache    // Optional statistics cache
	sessions  *session.Manager     // Optional remembered login
	now       func() time.Time     // Clock
	current   *domain.User         // Logged in user, nil when logged out
}

// Option configures an App
type Option func(*App)

// WithSummaryStore records a summary each time today's progress is shown
func WithSummaryStore(s SummaryStore) Option { return func(a *App) { a.summaries = s } }

// WithStatsCache caches statistics reports
func WithStatsCache(c *cache.StatsCache) Option { return func(a *App) { a.stats = c } }

// WithSessions remembers the logged in user across runs
func WithSessions(m *session.Manager) Option { return func(a *App) { a.sessions = m } }

// WithClock replaces time.Now for "today"
func WithClock(now func() time.Time) Option { return func(a *App) { a.now = now } }

// New creates the console reading from in and writing to out
func New(users *service.UserService, meals *service.MealService, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		users:  users,
		meals:  meals,
		prompt: NewPrompter(in, out),
		out:    out,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run drives the menus until the user exits or input ends
func (a *App) Run() error {
	a.println("=== Diet Planner & Nutrition Tracker ===")
	a.println("Welcome to your personal diet tracking system!")
	a.resume()

	for {
		var err error
		if a.current == nil {
			err = a.loginMenu()
		} else {
			err = a.mainMenu()
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			a.println("Thank you for using Diet Planner & Nutrition Tracker!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// resume logs in a remembered user that still exists
func (a *App) resume() {
	if a.sessions == nil {
		return
	}
	username, err := a.sessions.Resume()
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Ignoring stored session")
		a.forget()
		return
	}
	if username == "" {
		return
	}
	if user := a.users.FindByUsername(username); user != nil {
		a.current = user
		a.printf("Welcome back, %s! (session resumed)\n", user.Username)
	}
}

func (a *App) loginMenu() error {
	a.println("\n=== Login Menu ===")
	a.println("1. Login")
	a.println("2. Register")
	a.println("3. Exit")
	choice, err := a.prompt.IntInRange("Enter your choice (1-3): ", 1, 3)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.login()
	case 2:
		return a.register()
	}
	return errQuit
}

func (a *App) mainMenu() error {
	a.println("\n=== Main Menu ===")
	a.printf("Welcome, %s!\n", a.current.Username)
	a.println("1. Log a Meal")
	a.println("2. View Today's Progress")
	a.println("3. View Meal History")
	a.println("4. Update Calorie Goal")
	a.println("5. View Statistics")
	a.println("6. Undo Last Meal")
	a.println("7. Change Password")
	a.println("8. Delete Account")
	a.println("9. Logout")
	a.println("10. Exit")
	choice, err := a.prompt.IntInRange("Enter your choice (1-10): ", 1, 10)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.logMeal()
	case 2:
		a.viewTodayProgress()
		return nil
	case 3:
		a.viewMealHistory()
		return nil
	case 4:
		return a.updateCalorieGoal()
	case 5:
		return a.viewStatistics()
	case 6:
		return a.undoLastMeal()
	case 7:
		return a.changePassword()
	case 8:
		return a.deleteAccount()
	case 9:
		a.logout()
		return nil
	}
	return errQuit
}

func (a *App) login() error {
	a.println("\n=== Login ===")
	username, err := a.prompt.String("Username: ")
	if err != nil {
		return err
	}
	password, err := a.prompt.String("Password: ")
	if err != nil {
		return err
	}
	user := a.users.Authenticate(username, password)
	if user == nil {
		a.println("Invalid username or password. Please try again.")
		return nil
	}
	a.current = user
	a.printf("Login successful! Welcome back, %s!\n", user.Username)
	if a.sessions != nil {
		if err := a.sessions.Remember(user.Username); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to remember session")
		}
	}
	return nil
}

func (a *App) register() error {
	a.println("\n=== Registration ===")
	var username string
	for {
		var err error
		if username, err = a.prompt.String("Username: "); err != nil {
			return err
		}
		if !IsValidUsername(username) {
			a.println("Username must be 3-20 characters long and contain only letters, numbers, and underscores.")
			continue
		}
		if a.users.FindByUsername(username) != nil {
			a.println("Username already exists. Please choose a different one.")
			continue
		}
		break
	}
	password, err := a.newPassword("Password: ")
	if err != nil {
		return err
	}
	if a.users.Register(username, password) {
		a.println("Registration successful! You can now login.")
	} else {
		a.println("Registration failed. Please try again.")
	}
	return nil
}

// newPassword prompts until the password meets the length rule
func (a *App) newPassword(label string) (string, error) {
	for {
		password, err := a.prompt.String(label)
		if err != nil {
			return "", err
		}
		if IsValidPassword(password) {
			return password, nil
		}
		a.println("Password must be at least 6 characters long.")
	}
}

func (a *App) logMeal() error {
	a.println("\n=== Log a Meal ===")
	a.println("Select meal type:")
	types := domain.MealTypes()
	for i, t := range types {
		a.printf("%d. %s\n", i+1, t.DisplayName())
	}
	choice, err := a.prompt.IntInRange(fmt.Sprintf("Enter your choice (1-%d): ", len(types)), 1, len(types))
	if err != nil {
		return err
	}
	mealType := types[choice-1]

	var items []domain.FoodItem
	for more := true; more; {
		a.println("\n--- Add Food Item ---")
		item, err := a.readFoodItem()
		if err != nil {
			return err
		}
		items = append(items, item)
		a.printf("Added: %s (%d calories)\n", item.Name, item.TotalCalories())
		if more, err = a.prompt.YesNo("Add another food item?"); err != nil {
			return err
		}
	}

	if !a.meals.AddMeal(a.current.Username, mealType, items) {
		a.println("Failed to log meal. Please try again.")
		return nil
	}
	a.invalidateStats()
	a.println("Meal logged successfully!")
	return nil
}

func (a *App) readFoodItem() (domain.FoodItem, error) {
	name, err := a.prompt.Field("Food name: ")
	if err != nil {
		return domain.FoodItem{}, err
	}
	calories, err := a.prompt.PositiveInt("Calories per unit: ")
	if err != nil {
		return domain.FoodItem{}, err
	}
	quantity, err := a.prompt.PositiveFloat("Quantity: ")
	if err != nil {
		return domain.FoodItem{}, err
	}
	unit, err := a.prompt.Field("Unit (e.g., grams, pieces, cups): ")
	if err != nil {
		return domain.FoodItem{}, err
	}
	return domain.NewFoodItem(name, calories, quantity, unit), nil
}

func (a *App) viewTodayProgress() {
	a.println("\n=== Today's Progress ===")
	log := a.meals.BuildDailyLog(a.current.Username, a.now())
	if log == nil {
		a.println("No meals logged for today.")
		return
	}
	writeProgress(a.out, log)
	if a.summaries != nil && len(log.Meals) > 0 {
		if err := a.summaries.UpsertDailySummary(log.Summary()); err != nil {
			logrus.WithFields(logrus.Fields{
				"username": log.Username,
				"error":    err.Error(),
			}).Error("Failed to save daily summary")
		}
	}
}

func (a *App) viewMealHistory() {
	a.println("\n=== Meal History ===")
	writeHistory(a.out, a.meals.MealsByUser(a.current.Username))
}

func (a *App) updateCalorieGoal() error {
	a.println("\n=== Update Calorie Goal ===")
	a.printf("Current daily calorie goal: %d calories\n", a.current.DailyCalorieGoal)
	goal, err := a.prompt.PositiveInt("Enter new daily calorie goal: ")
	if err != nil {
		return err
	}
	if a.users.UpdateCalorieGoal(a.current.Username, goal) {
		a.println("Calorie goal updated successfully!")
	} else {
		a.println("Failed to update calorie goal. Please try again.")
	}
	return nil
}

// statisticsPeriods maps the menu choice to a window in days; all time is approximated as a year
var statisticsPeriods = []struct {
	label string
	days  int
}{
	{"Last 7 days", 7},
	{"Last 30 days", 30},
	{"All time", 365},
}

func (a *App) viewStatistics() error {
	a.println("\n=== Statistics ===")
	a.println("Select time period:")
	for i, p := range statisticsPeriods {
		a.printf("%d. %s\n", i+1, p.label)
	}
	choice, err := a.prompt.IntInRange(fmt.Sprintf("Enter your choice (1-%d): ", len(statisticsPeriods)), 1, len(statisticsPeriods))
	if err != nil {
		return err
	}
	days := statisticsPeriods[choice-1].days
	writeStatistics(a.out, a.statistics(days), days, a.current.DailyCalorieGoal)
	return nil
}

// statistics serves the report from the cache when one is configured
func (a *App) statistics(days int) service.Statistics {
	username := a.current.Username
	if a.stats == nil {
		return a.meals.Statistics(username, days)
	}
	ctx := context.Background()
	stats, found, err := a.stats.Get(ctx, username, days)
	if err == nil && found {
		return stats
	}
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Statistics cache read failed")
	}
	stats = a.meals.Statistics(username, days)
	if err := a.stats.Set(ctx, username, days, stats); err != nil {
		logrus.WithField("error", err.Error()).Warn("Statistics cache write failed")
	}
	return stats
}

func (a *App) invalidateStats() {
	if a.stats == nil {
		return
	}
	if err := a.stats.Invalidate(context.Background(), a.current.Username); err != nil {
		logrus.WithField("error", err.Error()).Warn("Statistics cache invalidation failed")
	}
}

func (a *App) undoLastMeal() error {
	a.println("\n=== Undo Last Meal ===")
	meal := a.meals.MostRecentMeal(a.current.Username)
	if meal == nil {
		a.println("No meals found in your history.")
		return nil
	}
	a.printf("%s %s - %s (%d calories)\n", meal.FormattedDate(), meal.FormattedTime(), meal.MealType.DisplayName(), meal.TotalCalories())
	ok, err := a.prompt.YesNo("Remove this meal?")
	if err != nil || !ok {
		return err
	}
	if a.meals.RemoveMeal(meal.Username, meal.MealType, meal.Timestamp) {
		a.invalidateStats()
		a.println("Meal removed.")
	} else {
		a.println("Failed to remove meal. Please try again.")
	}
	return nil
}

func (a *App) changePassword() error {
	a.println("\n=== Change Password ===")
	old, err := a.prompt.String("Current password: ")
	if err != nil {
		return err
	}
	password, err := a.newPassword("New password: ")
	if err != nil {
		return err
	}
	if a.users.ChangePassword(a.current.Username, old, password) {
		a.println("Password changed successfully!")
	} else {
		a.println("Failed to change password. Please check your current password.")
	}
	return nil
}

func (a *App) deleteAccount() error {
	a.println("\n=== Delete Account ===")
	ok, err := a.prompt.YesNo("This removes your account. Continue?")
	if err != nil || !ok {
		return err
	}
	password, err := a.prompt.String("Password: ")
	if err != nil {
		return err
	}
	if a.users.Authenticate(a.current.Username, password) == nil || !a.users.DeleteUser(a.current.Username) {
		a.println("Failed to delete account. Please check your password.")
		return nil
	}
	a.current = nil
	a.forget()
	a.println("Account deleted.")
	return nil
}

func (a *App) logout() {
	a.current = nil
	a.forget()
	a.println("Logged out successfully.")
}

func (a *App) forget() {
	if a.sessions == nil {
		return
	}
	if err := a.sessions.Forget(); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to clear session")
	}
}

func (a *App) println(s string) { fmt.Fprintln(a.out, s) }

func (a *App) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }
