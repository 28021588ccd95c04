package storage

import (
	"bufio"         // Buffered line IO
	"errors"        // Error inspection
	"fmt"           // Error wrapping
	"os"            // File access
	"path/filepath" // Path joining
	"strings"       // Blank line detection

	"diet_tracker/internal/domain" // Record types

	"github.com/sirupsen/logrus" // Logging library
)

// File names inside the data directory
const (
	UsersFile     = "users.txt"
	MealsFile     = "meals.txt"
	DailyLogsFile = "daily_logs.txt"
)

// FileStore reads and writes whole record lists as delimited text files
type FileStore struct {
	dir string // Data directory
}

// NewFileStore creates a store rooted at dir. The directory is created lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the data directory
func (s *FileStore) Dir() string { return s.dir }

// Path returns the full path of a data file
func (s *FileStore) Path(name string) string { return filepath.Join(s.dir, name) }

// LoadUsers reads every user. A missing file yields an empty list.
func (s *FileStore) LoadUsers() ([]domain.User, error) {
	return loadRecords(s.Path(UsersFile), ParseUser)
}

// SaveUsers rewrites the users file
func (s *FileStore) SaveUsers(users []domain.User) error {
	return saveRecords(s.dir, s.Path(UsersFile), users, FormatUser)
}

// LoadMeals reads every meal in file order
func (s *FileStore) LoadMeals() ([]domain.Meal, error) {
	return loadRecords(s.Path(MealsFile), ParseMeal)
}

// SaveMeals rewrites the meals file
func (s *FileStore) SaveMeals(meals []domain.Meal) error {
	return saveRecords(s.dir, s.Path(MealsFile), meals, FormatMeal)
}

// LoadDailySummaries reads the daily logs file. Only aggregates come back.
func (s *FileStore) LoadDailySummaries() ([]domain.DailySummary, error) {
	return loadRecords(s.Path(DailyLogsFile), ParseSummary)
}

// SaveDailySummaries rewrites the daily logs file
func (s *FileStore) SaveDailySummaries(summaries []domain.DailySummary) error {
	return saveRecords(s.dir, s.Path(DailyLogsFile), summaries, FormatSummary)
}

// UpsertDailySummary replaces the summary for the same user and date, or appends it
func (s *FileStore) UpsertDailySummary(summary domain.DailySummary) error {
	summaries, err := s.LoadDailySummaries()
	if err != nil {
		return err
	}
	replaced := false
	for i := range summaries {
		if summaries[i].Username == summary.Username && domain.SameDay(summaries[i].Date, summary.Date) {
			summaries[i] = summary
			replaced = true
			break
		}
	}
	if !replaced {
		summaries = append(summaries, summary)
	}
	return s.SaveDailySummaries(summaries)
}

// Clear deletes all three data files
func (s *FileStore) Clear() error {
	var errs []error
	for _, name := range []string{UsersFile, MealsFile, DailyLogsFile} {
		if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ensureDir creates the data directory. Failure is logged and ignored,
// the following write reports the real error.
func ensureDir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.WithFields(logrus.Fields{
			"dir":   dir,
			"error": err.Error(),
		}).Error("Failed to create data directory")
	}
}

// loadRecords parses one record per non-blank line, skipping lines that do not parse
func loadRecords[T any](path string, parse func(string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil // Nothing saved yet
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // Long meals
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parse(line)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"file":  path,
				"line":  lineNo,
				"error": err.Error(),
			}).Warn("Skipping malformed record")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// saveRecords truncates path and writes one formatted record per line
func saveRecords[T any](dir, path string, records []T, format func(T) string) (err error) {
	ensureDir(dir)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	w := bufio.NewWriter(f)
	for _, rec := range records {
		if _, err := w.WriteString(format(rec) + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
