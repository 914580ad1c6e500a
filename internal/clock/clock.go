package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Func позволяет передать функцию как Clock
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// Fixed часы для тестов
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// Today полночь UTC текущего дня
func Today(c Clock) time.Time {
	return TruncateDay(c.Now())
}

func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
