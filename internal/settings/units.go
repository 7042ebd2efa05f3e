package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeUnit selects how minute values are shown and entered.
type TimeUnit string

const (
	Minutes TimeUnit = "minutes"
	Hours   TimeUnit = "hours"
)

// MaxInputMinutes caps a single entered time value.
const MaxInputMinutes = 99999

func (u TimeUnit) Valid() bool { return u == Minutes || u == Hours }

// ParseTimeUnit accepts the unit names and their short forms.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minutes", "minute", "min", "m":
		return Minutes, nil
	case "hours", "hour", "h":
		return Hours, nil
	}
	return "", fmt.Errorf("unknown time unit %q (want minutes or hours)", s)
}

// Format renders minutes in the unit: whole minutes, or hours to two decimals.
func (u TimeUnit) Format(minutes int) string {
	if u == Hours {
		return strconv.FormatFloat(float64(minutes)/60.0, 'f', 2, 64)
	}
	return strconv.Itoa(minutes)
}

// Suffix is the short label for the unit.
func (u TimeUnit) Suffix() string {
	if u == Hours {
		return "h"
	}
	return "m"
}

// ParseMinutes reads a value entered in the unit and returns whole minutes.
// An explicit "h" or "m" suffix overrides the unit.
func (u TimeUnit) ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := u
	switch {
	case strings.HasSuffix(s, "h"):
		unit, s = Hours, strings.TrimSpace(strings.TrimSuffix(s, "h"))
	case strings.HasSuffix(s, "m"):
		unit, s = Minutes, strings.TrimSpace(strings.TrimSuffix(s, "m"))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if unit == Hours {
		v *= 60
	}
	minutes := int(math.Round(v))
	if minutes < 0 {
		return 0, fmt.Errorf("time %q is less than zero", s)
	}
	if minutes > MaxInputMinutes {
		return 0, fmt.Errorf("time %q exceeds %d minutes", s, MaxInputMinutes)
	}
	return minutes, nil
}
