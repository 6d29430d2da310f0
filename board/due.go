package board

import "time"

// IsOverdue returns true when an incomplete task was due before the start
// of the day containing now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(startOfDay(now))
}

// IsDueSoon returns true when the task is due today or tomorrow.
func (t Task) IsDueSoon(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	days := daysUntil(*t.DueDate, now)
	return days == 0 || days == 1
}

// DueLabel formats the due date relative to now: "Today", "Tomorrow", or
// a short month and day such as "Jan 2". It is empty when there is no due date.
func (t Task) DueLabel(now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	switch daysUntil(*t.DueDate, now) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return t.DueDate.In(now.Location()).Format("Jan 2")
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysUntil counts calendar days from now's date to due's date, in now's
// location.
func daysUntil(due, now time.Time) int {
	dueDay := startOfDay(due.In(now.Location()))
	today := startOfDay(now)
	y1, m1, d1 := dueDay.Date()
	y2, m2, d2 := today.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
