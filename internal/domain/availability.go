package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/WorkSlot-BookingService/pkg/types"
)

// Weekday день недели в расписании провайдера
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays все дни недели в порядке с понедельника
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayByTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf день недели даты в её часовом поясе
func WeekdayOf(date time.Time) Weekday {
	return weekdayByTime[date.Weekday()]
}

func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// EntryKind тип записи расписания
type EntryKind string

const (
	// EntryWindow интервал, нарезаемый на слоты по slot_duration
	EntryWindow EntryKind = "window"
	// EntrySpecific один слот с фиксированным началом
	EntrySpecific EntryKind = "specific"
)

// ScheduleEntry запись расписания на день
type ScheduleEntry struct {
	Kind  EntryKind        `json:"type"`
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end,omitempty"` // только для window
}

// UnmarshalJSON записи без типа считаются интервалами
func (e *ScheduleEntry) UnmarshalJSON(data []byte) error {
	type raw ScheduleEntry
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Kind == "" {
		r.Kind = EntryWindow
	}
	*e = ScheduleEntry(r)
	return nil
}

// Validate проверяет запись расписания
func (e ScheduleEntry) Validate() error {
	if err := e.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start %q: %v", ErrConfigInvalid, e.Start, err)
	}

	switch e.Kind {
	case EntrySpecific:
		return nil
	case EntryWindow:
		if err := e.End.Validate(); err != nil {
			return fmt.Errorf("%w: end %q: %v", ErrConfigInvalid, e.End, err)
		}
		if !e.Start.IsBefore(e.End) {
			return fmt.Errorf("%w: window end %s must be after start %s", ErrConfigInvalid, e.End, e.Start)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown entry type %q", ErrConfigInvalid, e.Kind)
	}
}

// Schedule расписание по дням недели, готовое к генерации слотов
type Schedule map[Weekday][]ScheduleEntry

// AvailabilityConfig конфигурация доступности провайдера.
// WorkingDays, StartTime и EndTime остались от плоского формата и используются только для миграции.
type AvailabilityConfig struct {
	DaySchedules map[Weekday][]ScheduleEntry `json:"day_schedules,omitempty"`
	SlotDuration *int                        `json:"slot_duration,omitempty"`

	WorkingDays []Weekday        `json:"working_days,omitempty"`
	StartTime   types.TimeString `json:"start_time,omitempty"`
	EndTime     types.TimeString `json:"end_time,omitempty"`
}

// SlotDurationMinutes действующая длительность слота, 0 означает свободную длительность
func (c AvailabilityConfig) SlotDurationMinutes() int {
	if c.SlotDuration == nil {
		return DefaultSlotDurationMinutes
	}
	return *c.SlotDuration
}

// IsLegacy конфигурация в старом плоском формате
func (c AvailabilityConfig) IsLegacy() bool {
	return len(c.DaySchedules) == 0 && len(c.WorkingDays) > 0
}

// Validate проверяет конфигурацию перед сохранением
func (c AvailabilityConfig) Validate() error {
	if c.SlotDuration != nil {
		d := *c.SlotDuration
		if d < 0 || d > MaxSlotDurationMinutes {
			return fmt.Errorf("%w: slot_duration must be between 0 and %d, got %d",
				ErrConfigInvalid, MaxSlotDurationMinutes, d)
		}
	}

	_, err := ResolveSchedule(c)
	return err
}

// ResolveSchedule приводит конфигурацию к расписанию по дням.
// Старый формат мигрирует в одно окно на каждый рабочий день, исходная конфигурация не меняется.
func ResolveSchedule(c AvailabilityConfig) (Schedule, error) {
	if c.IsLegacy() {
		return resolveLegacy(c)
	}

	schedule := make(Schedule, len(c.DaySchedules))
	for day, entries := range c.DaySchedules {
		if !day.IsValid() {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrConfigInvalid, day)
		}
		if len(entries) > MaxEntriesPerDay {
			return nil, fmt.Errorf("%w: %s has %d entries, max %d", ErrConfigInvalid, day, len(entries), MaxEntriesPerDay)
		}
		if len(entries) == 0 {
			continue
		}

		resolved := make([]ScheduleEntry, 0, len(entries))
		for i, entry := range entries {
			if err := entry.Validate(); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", day, i, err)
			}
			if entry.Kind == EntrySpecific {
				entry.End = ""
			}
			resolved = append(resolved, entry)
		}
		schedule[day] = resolved
	}

	return schedule, nil
}

func resolveLegacy(c AvailabilityConfig) (Schedule, error) {
	start := c.StartTime
	if start.IsZero() {
		start = DefaultLegacyStartTime
	}
	end := c.EndTime
	if end.IsZero() {
		end = DefaultLegacyEndTime
	}

	window := ScheduleEntry{Kind: EntryWindow, Start: start, End: end}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("legacy hours: %w", err)
	}

	schedule := make(Schedule, len(c.WorkingDays))
	for _, day := range c.WorkingDays {
		if !day.IsValid() {
			return nil, fmt.Errorf("%w: unknown legacy working day %q", ErrConfigInvalid, day)
		}
		schedule[day] = []ScheduleEntry{window}
	}

	return schedule, nil
}
