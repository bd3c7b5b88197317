package schedule

import (
	"testing"
	"time"
)

func TestBumpDue(t *testing.T) {
	base := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		freq int
		want time.Time
	}{
		{7, base.AddDate(0, 0, 7)},
		{1, base.AddDate(0, 0, 1)},
		{30, base.AddDate(0, 0, 30)},
		// Non-positive frequencies still advance by one day.
		{0, base.AddDate(0, 0, 1)},
		{-5, base.AddDate(0, 0, 1)},
	}
	for _, tt := range tests {
		if got := BumpDue(base, tt.freq); !got.Equal(tt.want) {
			t.Errorf("BumpDue(freq=%d) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

func TestInitialDue(t *testing.T) {
	created := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	want := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	if got := InitialDue(created, 7); !got.Equal(want) {
		t.Errorf("InitialDue = %v, want %v", got, want)
	}
}

func TestWasLateDateOnly(t *testing.T) {
	due := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	// 23:59 on the due date is on time, even though the due timestamp is 08:00.
	onTime := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	if WasLate(onTime, &due) {
		t.Error("completion at 23:59 on the due date should not be late")
	}

	// 00:01 the next day is late.
	late := time.Date(2024, 1, 11, 0, 1, 0, 0, time.UTC)
	if !WasLate(late, &due) {
		t.Error("completion at 00:01 the day after should be late")
	}

	if WasLate(late, nil) {
		t.Error("a task with no due date can never be late")
	}
}

func TestClassify(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	wasLate, backdated := Classify(due.AddDate(0, 0, 2), &due, true)
	if !wasLate || !backdated {
		t.Errorf("explicit late timestamp: got (%v, %v), want (true, true)", wasLate, backdated)
	}

	// Backdated but on time: the flags are independent.
	wasLate, backdated = Classify(due.AddDate(0, 0, -1), &due, true)
	if wasLate || !backdated {
		t.Errorf("explicit on-time timestamp: got (%v, %v), want (false, true)", wasLate, backdated)
	}

	wasLate, backdated = Classify(due, &due, false)
	if wasLate || backdated {
		t.Errorf("\"now\" on the due date: got (%v, %v), want (false, false)", wasLate, backdated)
	}
}

func TestHumanizeDue(t *testing.T) {
	now := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)

	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		due  *time.Time
		want string
	}{
		{nil, "—"},
		{day(0), "Today"},
		{day(1), "Tomorrow"},
		{day(3), "in 3d"},
		{day(-2), "Overdue by 2d"},
	}
	for _, tt := range tests {
		if got := HumanizeDue(tt.due, now); got != tt.want {
			t.Errorf("HumanizeDue(%v) = %q, want %q", tt.due, got, tt.want)
		}
	}

	// Time of day must not affect the bucket.
	lateTonight := time.Date(2024, 5, 21, 0, 30, 0, 0, time.UTC)
	if got := HumanizeDue(&lateTonight, now); got != "Tomorrow" {
		t.Errorf("HumanizeDue just after midnight = %q, want %q", got, "Tomorrow")
	}
}
