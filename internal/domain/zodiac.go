package domain

import (
	"fmt"
	"time"
)

// Sign is a tropical zodiac sun-sign bucket. It doubles as the cross-user
// key component of the shared daily forecast cache.
type Sign string

// The twelve tropical sun signs.
const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

// SignForDate buckets a calendar date into its tropical sun sign. Only month
// and day matter; the year is ignored. Boundary days use the common tropical
// calendar (e.g. February 19 through March 20 is Pisces).
func SignForDate(t time.Time) Sign {
	day := t.Day()
	switch t.Month() {
	case time.January:
		if day <= 19 {
			return Capricorn
		}
		return Aquarius
	case time.February:
		if day <= 18 {
			return Aquarius
		}
		return Pisces
	case time.March:
		if day <= 20 {
			return Pisces
		}
		return Aries
	case time.April:
		if day <= 19 {
			return Aries
		}
		return Taurus
	case time.May:
		if day <= 20 {
			return Taurus
		}
		return Gemini
	case time.June:
		if day <= 20 {
			return Gemini
		}
		return Cancer
	case time.July:
		if day <= 22 {
			return Cancer
		}
		return Leo
	case time.August:
		if day <= 22 {
			return Leo
		}
		return Virgo
	case time.September:
		if day <= 22 {
			return Virgo
		}
		return Libra
	case time.October:
		if day <= 22 {
			return Libra
		}
		return Scorpio
	case time.November:
		if day <= 21 {
			return Scorpio
		}
		return Sagittarius
	default:
		if day <= 21 {
			return Sagittarius
		}
		return Capricorn
	}
}

// SignForBirthDate buckets a "2006-01-02" birth date string.
func SignForBirthDate(birthDate string) (Sign, error) {
	t, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return "", fmt.Errorf("invalid birth date %q: %w", birthDate, err)
	}
	return SignForDate(t), nil
}

// ValidSign reports whether s (already lowercased) names one of the twelve
// sun-sign buckets.
func ValidSign(s string) bool {
	switch Sign(s) {
	case Aries, Taurus, Gemini, Cancer, Leo, Virgo,
		Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces:
		return true
	}
	return false
}
