package shell

import (
	"bufio"   // Line scanning
	"errors"  // Sentinel errors
	"fmt"     // Output formatting
	"io"      // Reader and writer
	"math"    // NaN and Inf checks
	"regexp"  // Username pattern
	"strconv" // Number parsing
	"strings" // Trimming

	"diet_tracker/internal/storage" // Field delimiter
)

// Parse errors. Their text is shown to the user before re-prompting.
var (
	ErrEmpty       = errors.New("input cannot be empty")
	ErrNotPositive = errors.New("please enter a valid positive number")
	ErrOutOfRange  = errors.New("number out of range")
	ErrNotYesNo    = errors.New("please enter 'y' for yes or 'n' for no")
	ErrDelimiter   = errors.New("input cannot contain '" + storage.Delimiter + "'")
)

// usernamePattern allows letters, digits and underscore
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsValidUsername checks for 3-20 characters of letters, digits or underscore after trimming
func IsValidUsername(username string) bool {
	trimmed := strings.TrimSpace(username)
	return len(trimmed) >= 3 && len(trimmed) <= 20 && usernamePattern.MatchString(trimmed)
}

// IsValidPassword checks for at least 6 characters after trimming
func IsValidPassword(password string) bool {
	return len(strings.TrimSpace(password)) >= 6
}

// ParseString trims raw and rejects empty input
func ParseString(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// ParseField is ParseString for values written to the data files
func ParseField(raw string) (string, error) {
	s, err := ParseString(raw)
	if err != nil {
		return "", err
	}
	if strings.Contains(s, storage.Delimiter) {
		return "", ErrDelimiter
	}
	return s, nil
}

// ParsePositiveInt accepts integers > 0
func ParsePositiveInt(raw string) (int, error) {
	s, err := ParseString(raw)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// ParsePositiveFloat accepts finite decimals > 0
func ParsePositiveFloat(raw string) (float64, error) {
	s, err := ParseString(raw)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// ParseIntInRange accepts integers within [min, max]
func ParseIntInRange(raw string, min, max int) (int, error) {
	s, err := ParseString(raw)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("%w: please enter a number between %d and %d", ErrOutOfRange, min, max)
	}
	return v, nil
}

// ParseYesNo accepts y, yes, n or no in any case
func ParseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, ErrNotYesNo
}

// Prompter asks for input until it parses. Only io.EOF and read errors end a prompt early.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads lines from r and writes prompts to w
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// String prompts for any non-empty text
func (p *Prompter) String(label string) (string, error) {
	return ask(p, label, ParseString)
}

// Field prompts for non-empty text without the file delimiter
func (p *Prompter) Field(label string) (string, error) {
	return ask(p, label, ParseField)
}

// PositiveInt prompts for an integer > 0
func (p *Prompter) PositiveInt(label string) (int, error) {
	return ask(p, label, ParsePositiveInt)
}

// PositiveFloat prompts for a decimal > 0
func (p *Prompter) PositiveFloat(label string) (float64, error) {
	return ask(p, label, ParsePositiveFloat)
}

// IntInRange prompts for an integer within [min, max]
func (p *Prompter) IntInRange(label string, min, max int) (int, error) {
	return ask(p, label, func(raw string) (int, error) { return ParseIntInRange(raw, min, max) })
}

// YesNo prompts for a yes or no answer
func (p *Prompter) YesNo(label string) (bool, error) {
	return ask(p, label+" (y/n): ", ParseYesNo)
}

// ask loops until parse accepts a line
func ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		fmt.Fprint(p.out, label)
		if !p.in.Scan() {
			var zero T
			if err := p.in.Err(); err != nil {
				return zero, err
			}
			fmt.Fprintln(p.out)
			return zero, io.EOF
		}
		v, err := parse(p.in.Text())
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "Error: %s. Please try again.\n", err)
	}
}
