package mood

import (
	"testing"
	"time"
)

func TestQualifyWindowSpansYesterdayAndToday(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	start, end := QualifyWindow(now)

	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("expected window start %v, got %v", wantStart, start)
	}
	if !end.Equal(now) {
		t.Errorf("expected window end %v, got %v", now, end)
	}
}

func TestContinuesWithEntryEarlierToday(t *testing.T) {
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	earlierToday := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

	// Logging twice within the same day keeps the streak alive.
	if !Continues([]time.Time{earlierToday}, now) {
		t.Error("expected same-day prior entry to continue the streak")
	}
}

func TestContinuesWithEntryYesterday(t *testing.T) {
	now := time.Date(2025, 3, 15, 7, 0, 0, 0, time.UTC)
	yesterdayEvening := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)

	if !Continues([]time.Time{yesterdayEvening}, now) {
		t.Error("expected yesterday's entry to continue the streak")
	}
}

func TestBreaksAfterFullMissedDay(t *testing.T) {
	// Last entry two days ago, nothing yesterday: one full missed calendar
	// day breaks the streak.
	now := time.Date(2025, 3, 15, 7, 0, 0, 0, time.UTC)
	twoDaysAgo := time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC)

	if Continues([]time.Time{twoDaysAgo}, now) {
		t.Error("expected a full missed day to break the streak")
	}
}

func TestWindowStartBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2025, 3, 15, 7, 0, 0, 0, time.UTC)
	yesterdayMidnight := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	if !Continues([]time.Time{yesterdayMidnight}, now) {
		t.Error("expected entry exactly at start of yesterday to qualify")
	}
}

func TestWindowEndBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 3, 15, 7, 0, 0, 0, time.UTC)

	// An entry stamped exactly now is not a prior entry.
	if Continues([]time.Time{now}, now) {
		t.Error("expected entry at now to fall outside the half-open window")
	}
}

func TestNextStreak(t *testing.T) {
	if got := NextStreak(4, true); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := NextStreak(4, false); got != 1 {
		t.Errorf("expected reset to 1, got %d", got)
	}
	if got := NextStreak(0, false); got != 1 {
		t.Errorf("expected first entry to start streak at 1, got %d", got)
	}
}

func TestNewBadgesThresholds(t *testing.T) {
	if got := NewBadges(6, nil); len(got) != 0 {
		t.Errorf("expected no badges below 7, got %v", got)
	}

	got := NewBadges(7, nil)
	if len(got) != 1 || got[0] != BadgeWeekStreak {
		t.Errorf("expected [%s], got %v", BadgeWeekStreak, got)
	}

	got = NewBadges(30, nil)
	if len(got) != 2 || got[0] != BadgeWeekStreak || got[1] != BadgeMonthStreak {
		t.Errorf("expected both badges at 30, got %v", got)
	}
}

func TestBadgesAreMonotonic(t *testing.T) {
	held := []string{BadgeWeekStreak}

	// Already-held badges are never granted again.
	if got := NewBadges(12, held); len(got) != 0 {
		t.Errorf("expected no duplicate badge grants, got %v", got)
	}

	// A streak reset does not revoke anything: NewBadges only ever adds.
	if got := NewBadges(1, held); len(got) != 0 {
		t.Errorf("expected nothing new after reset, got %v", got)
	}
}

func TestWeeklyTrendSingleEntry(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	sixDaysAgo := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)

	entries := []Entry{
		{MoodScore: 5, EnergyLevel: 5, FocusLevel: 5, CreatedAt: sixDaysAgo},
	}

	trend := WeeklyTrend(entries, now)

	if len(trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(trend))
	}
	if trend[0].Date != "2025-03-09" {
		t.Errorf("expected oldest day first, got %s", trend[0].Date)
	}
	if trend[6].Date != "2025-03-15" {
		t.Errorf("expected today last, got %s", trend[6].Date)
	}

	if trend[0].Value == nil || *trend[0].Value != 5 {
		t.Errorf("expected mood 5 six days ago, got %v", trend[0].Value)
	}
	for i := 1; i < 7; i++ {
		if trend[i].Value != nil {
			t.Errorf("expected no data on day %d, got %v", i, *trend[i].Value)
		}
	}

	avgMood, avgEnergy, avgFocus := Averages(entries)
	if avgMood != 5.0 || avgEnergy != 5.0 || avgFocus != 5.0 {
		t.Errorf("expected averages 5.0, got %v %v %v", avgMood, avgEnergy, avgFocus)
	}
}

func TestWeeklyTrendOneValuePerDay(t *testing.T) {
	now := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)

	entries := []Entry{
		{MoodScore: 3, CreatedAt: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)},
		{MoodScore: 9, CreatedAt: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)},
	}

	trend := WeeklyTrend(entries, now)

	if trend[6].Value == nil || *trend[6].Value != 3 {
		t.Errorf("expected first matching entry's score 3, got %v", trend[6].Value)
	}
}

func TestAveragesRounding(t *testing.T) {
	entries := []Entry{
		{MoodScore: 7, EnergyLevel: 4, FocusLevel: 8},
		{MoodScore: 6, EnergyLevel: 5, FocusLevel: 8},
		{MoodScore: 7, EnergyLevel: 5, FocusLevel: 9},
	}

	avgMood, avgEnergy, avgFocus := Averages(entries)

	if avgMood != 6.7 {
		t.Errorf("expected mood average 6.7, got %v", avgMood)
	}
	if avgEnergy != 4.7 {
		t.Errorf("expected energy average 4.7, got %v", avgEnergy)
	}
	if avgFocus != 8.3 {
		t.Errorf("expected focus average 8.3, got %v", avgFocus)
	}
}

func TestAveragesEmpty(t *testing.T) {
	avgMood, avgEnergy, avgFocus := Averages(nil)
	if avgMood != 0 || avgEnergy != 0 || avgFocus != 0 {
		t.Errorf("expected zeros for no entries, got %v %v %v", avgMood, avgEnergy, avgFocus)
	}
}
