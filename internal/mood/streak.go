package mood

import (
	"math"
	"time"
)

const (
	BadgeWeekStreak  = "7-day-streak"
	BadgeMonthStreak = "30-day-streak"
)

// QualifyWindow returns the half-open interval [start of yesterday, now).
// A prior entry inside this window means the streak continues. The window
// deliberately spans yesterday *and* today, so logging twice in one day keeps
// the streak alive, while a full missed calendar day breaks it.
func QualifyWindow(now time.Time) (time.Time, time.Time) {
	yesterday := now.AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, now.Location())
	return start, now
}

// Continues reports whether any of the given entry timestamps falls inside
// the qualifying window for now.
func Continues(entryTimes []time.Time, now time.Time) bool {
	start, end := QualifyWindow(now)
	for _, t := range entryTimes {
		if !t.Before(start) && t.Before(end) {
			return true
		}
	}
	return false
}

// NextStreak computes the streak after logging a new entry. A non-qualifying
// gap resets to 1: the entry just created counts as day one.
func NextStreak(current int, continued bool) int {
	if continued {
		return current + 1
	}
	return 1
}

// NewBadges returns the milestone badges earned at the given streak that are
// not already held. Badges are never revoked, so held ones are simply skipped.
func NewBadges(streak int, held []string) []string {
	has := func(badge string) bool {
		for _, b := range held {
			if b == badge {
				return true
			}
		}
		return false
	}

	var earned []string
	if streak >= 7 && !has(BadgeWeekStreak) {
		earned = append(earned, BadgeWeekStreak)
	}
	if streak >= 30 && !has(BadgeMonthStreak) {
		earned = append(earned, BadgeMonthStreak)
	}
	return earned
}

// WeeklyTrend builds the 7-day mood trend ending today, oldest day first.
// Each day reports the mood score of at most one entry from that calendar
// day, or a nil value when nothing was logged.
func WeeklyTrend(entries []Entry, now time.Time) []TrendPoint {
	trend := make([]TrendPoint, 0, 7)

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		point := TrendPoint{Date: dayStart.Format("2006-01-02")}
		for _, e := range entries {
			if !e.CreatedAt.Before(dayStart) && e.CreatedAt.Before(dayEnd) {
				score := e.MoodScore
				point.Value = &score
				break
			}
		}
		trend = append(trend, point)
	}

	return trend
}

// Averages returns the all-time mood/energy/focus means rounded to one
// decimal place. Zero entries yields all zeros.
func Averages(entries []Entry) (avgMood, avgEnergy, avgFocus float64) {
	if len(entries) == 0 {
		return 0, 0, 0
	}

	var mood, energy, focus int
	for _, e := range entries {
		mood += e.MoodScore
		energy += e.EnergyLevel
		focus += e.FocusLevel
	}

	n := float64(len(entries))
	round1 := func(v float64) float64 { return math.Round(v*10) / 10 }
	return round1(float64(mood) / n), round1(float64(energy) / n), round1(float64(focus) / n)
}
