// Package generator produces random test data and converts the time formats
// shown by the application under test.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
)

const (
	lower       = "abcdefghijklmnopqrstuvwxyz"
	upper       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits      = "0123456789"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// DefaultPasswordLength is the length GeneratePassword uses for n <= 0
	DefaultPasswordLength = 15
)

func pick(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// GeneratePassword - returns a password with at least one lower-case letter,
// one upper-case letter, one digit and one punctuation character
func GeneratePassword(n int) string {
	if n <= 0 {
		n = DefaultPasswordLength
	}
	if n < 4 {
		n = 4
	}
	for {
		p := pick(lower+upper+digits+punctuation, n)
		if isStrong(p) {
			return p
		}
	}
}

func isStrong(p string) bool {
	var hasLower, hasUpper, hasDigit, hasPunct bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(punctuation, r):
			hasPunct = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasPunct
}

// CustomID - returns n random lower-case letters and digits
func CustomID(n int) string {
	return pick(lower+digits, n)
}

// RandomAlphanumeric - returns n random letters and digits; n <= 0 means 10
func RandomAlphanumeric(n int) string {
	if n <= 0 {
		n = 10
	}
	return pick(lower+upper+digits, n)
}

// WaitForNextMinute - sleeps 20s when the current second is 40 or later, so a
// following step does not straddle a minute boundary
func WaitForNextMinute(logger *logrus.Logger) {
	waitForNextMinute(time.Now(), time.Sleep, logger)
}

func waitForNextMinute(now time.Time, sleep func(time.Duration), logger *logrus.Logger) bool {
	if now.Second() < 40 {
		return false
	}
	logger.Infof("Second %d of the minute, waiting 20 seconds", now.Second())
	sleep(20 * time.Second)
	return true
}

// TimeDifference - returns the span between two "3:04 PM" clock times as
// hour and minute strings such as "2h" and "05m". An end before start wraps past midnight.
func TimeDifference(start, end string) (string, string, error) {
	const layout = "3:04 PM"
	s, err := time.Parse(layout, strings.TrimSpace(start))
	if err != nil {
		return "", "", fmt.Errorf("invalid start time %q: %w", start, err)
	}
	e, err := time.Parse(layout, strings.TrimSpace(end))
	if err != nil {
		return "", "", fmt.Errorf("invalid end time %q: %w", end, err)
	}
	d := e.Sub(s)
	if d < 0 {
		d += 24 * time.Hour
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh", minutes/60), fmt.Sprintf("%02dm", minutes%60), nil
}

// TimeToSeconds - converts "s", "m:s" or "h:m:s" to seconds
func TimeToSeconds(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	total, unit := 0, 1
	for i := len(parts) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", value, err)
		}
		total += n * unit
		unit *= 60
	}
	return total, nil
}

// SecondsToMMSS - formats a duration in seconds as "m:ss"
func SecondsToMMSS(seconds int) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("duration cannot be negative: %d", seconds)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60), nil
}
