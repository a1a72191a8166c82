package util

import (
	"regexp"
	"time"
)

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidMonth reports whether s is a literal YYYY-MM month string
func ValidMonth(s string) bool {
	return monthRe.MatchString(s)
}

// ValidDate reports whether s is a literal YYYY-MM-DD date string
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// MonthOfDate truncates a YYYY-MM-DD date to its YYYY-MM month
func MonthOfDate(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// CurrentMonth returns the current calendar month as YYYY-MM (UTC)
func CurrentMonth() string {
	return time.Now().UTC().Format("2006-01")
}
