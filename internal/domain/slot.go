package domain

import "time"

// Slot интервал, который можно забронировать. Вычисляется, не хранится.
type Slot struct {
	Start time.Time
	End   time.Time
	Label string
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Matches совпадение границ слота с запрошенным интервалом
func (s Slot) Matches(start, end time.Time) bool {
	return s.Start.Equal(start) && s.End.Equal(end)
}
