// Package tz resolves user-supplied time zone specifications: IANA names,
// fixed UTC offsets and free-form city names.
package tz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tombelial666/reminderBot/internal/domain"
)

// CityIndex resolves a free-form city name to a zone identifier.
type CityIndex interface {
	LookupZone(city string) (string, bool)
}

// Resolver validates and resolves zone specifications. A nil CityIndex
// disables city lookup.
type Resolver struct {
	cities CityIndex
}

func NewResolver(cities CityIndex) *Resolver {
	return &Resolver{cities: cities}
}

// utcOffsetRe matches fixed-offset specs like UTC+7, UTC-03:30, UTC+07:00.
var utcOffsetRe = regexp.MustCompile(`(?i)^UTC(?:([+-])(\d{1,2})(?::(\d{2}))?)?$`)

const maxOffset = 14 * time.Hour

// Resolve turns a zone spec into a usable location. Accepted forms, tried in
// order: fixed offset UTC±HH:MM, IANA region/city name, free-form city name.
func (r *Resolver) Resolve(spec string) (*time.Location, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return nil, domain.ErrInvalidZone
	}

	if m := utcOffsetRe.FindStringSubmatch(s); m != nil {
		return fixedZone(m)
	}

	if loc, err := time.LoadLocation(s); err == nil {
		return loc, nil
	}

	if r.cities != nil {
		name, ok := r.cities.LookupZone(s)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnresolvableCity, s)
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidZone, name)
		}
		return loc, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrInvalidZone, s)
}

// Canonical resolves spec and returns the identifier to persist: the fixed
// offset normalized to UTC±HH:MM, the IANA name, or the city's zone name.
func (r *Resolver) Canonical(spec string) (string, error) {
	s := strings.TrimSpace(spec)
	if m := utcOffsetRe.FindStringSubmatch(s); m != nil {
		loc, err := fixedZone(m)
		if err != nil {
			return "", err
		}
		return loc.String(), nil
	}
	if loc, err := time.LoadLocation(s); err == nil {
		return loc.String(), nil
	}
	if r.cities != nil {
		if name, ok := r.cities.LookupZone(s); ok {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", domain.ErrUnresolvableCity, s)
	}
	return "", fmt.Errorf("%w: %s", domain.ErrInvalidZone, s)
}

func fixedZone(m []string) (*time.Location, error) {
	if m[1] == "" {
		// bare "UTC"
		return time.UTC, nil
	}
	hh, _ := strconv.Atoi(m[2])
	mm := 0
	if m[3] != "" {
		mm, _ = strconv.Atoi(m[3])
	}
	if mm > 59 {
		return nil, fmt.Errorf("%w: minutes out of range", domain.ErrInvalidZone)
	}
	off := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	if off > maxOffset {
		return nil, fmt.Errorf("%w: offset beyond ±14:00", domain.ErrInvalidZone)
	}
	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	secs := sign * int(off.Seconds())
	return time.FixedZone(formatOffset(secs/60), secs), nil
}

// DeriveOffsetFromLocalClock derives a fixed UTC±HH:MM spec from the user's
// current wall clock. Among the same-day, next-day and previous-day
// interpretations it picks the one minimizing |offset|, clamped to ±14:00.
func DeriveOffsetFromLocalClock(hh, mm int, nowUTC time.Time) string {
	nowUTC = nowUTC.UTC()
	sameDay := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), hh, mm, 0, 0, time.UTC)
	candidates := []time.Duration{
		sameDay.Sub(nowUTC),
		sameDay.Add(24 * time.Hour).Sub(nowUTC),
		sameDay.Add(-24 * time.Hour).Sub(nowUTC),
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if abs(c) < abs(best) {
			best = c
		}
	}
	minutes := int(best.Round(time.Minute) / time.Minute)
	if minutes > 14*60 {
		minutes = 14 * 60
	}
	if minutes < -14*60 {
		minutes = -14 * 60
	}
	return formatOffset(minutes)
}

func formatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
