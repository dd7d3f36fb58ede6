package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WorkSlot-BookingService/pkg/ptr"
)

func TestResolveSchedule_LegacyMigration(t *testing.T) {
	cfg := AvailabilityConfig{
		WorkingDays: []Weekday{Monday, Wednesday},
		StartTime:   "10:00",
		EndTime:     "14:00",
	}

	schedule, err := ResolveSchedule(cfg)
	require.NoError(t, err)

	want := Schedule{
		Monday:    {{Kind: EntryWindow, Start: "10:00", End: "14:00"}},
		Wednesday: {{Kind: EntryWindow, Start: "10:00", End: "14:00"}},
	}
	assert.Equal(t, want, schedule)

	// Повторный вызов даёт тот же результат и не трогает исходные поля
	again, err := ResolveSchedule(cfg)
	require.NoError(t, err)
	assert.Equal(t, schedule, again)
	assert.Empty(t, cfg.DaySchedules)
	assert.Equal(t, []Weekday{Monday, Wednesday}, cfg.WorkingDays)
}

func TestResolveSchedule_LegacyDefaults(t *testing.T) {
	schedule, err := ResolveSchedule(AvailabilityConfig{WorkingDays: []Weekday{Friday}})
	require.NoError(t, err)

	assert.Equal(t, Schedule{
		Friday: {{Kind: EntryWindow, Start: "09:00", End: "17:00"}},
	}, schedule)
}

func TestResolveSchedule_DaySchedulesWin(t *testing.T) {
	cfg := AvailabilityConfig{
		DaySchedules: map[Weekday][]ScheduleEntry{
			Tuesday: {{Kind: EntrySpecific, Start: "11:00", End: "12:00"}},
		},
		WorkingDays: []Weekday{Monday},
	}

	schedule, err := ResolveSchedule(cfg)
	require.NoError(t, err)

	assert.Equal(t, Schedule{Tuesday: {{Kind: EntrySpecific, Start: "11:00"}}}, schedule)
	// исходная запись не изменилась
	assert.Equal(t, "12:00", cfg.DaySchedules[Tuesday][0].End.String())
}

func TestResolveSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  AvailabilityConfig
	}{
		{
			name: "window end before start",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				Monday: {{Kind: EntryWindow, Start: "10:00", End: "09:00"}},
			}},
		},
		{
			name: "window end equals start",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				Monday: {{Kind: EntryWindow, Start: "10:00", End: "10:00"}},
			}},
		},
		{
			name: "window without end",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				Monday: {{Kind: EntryWindow, Start: "10:00"}},
			}},
		},
		{
			name: "unknown weekday",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				"Monday": {{Kind: EntryWindow, Start: "10:00", End: "11:00"}},
			}},
		},
		{
			name: "unknown kind",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				Monday: {{Kind: "range", Start: "10:00", End: "11:00"}},
			}},
		},
		{
			name: "bad start",
			cfg: AvailabilityConfig{DaySchedules: map[Weekday][]ScheduleEntry{
				Monday: {{Kind: EntrySpecific, Start: "25:00"}},
			}},
		},
		{
			name: "legacy bad hours",
			cfg:  AvailabilityConfig{WorkingDays: []Weekday{Monday}, StartTime: "18:00", EndTime: "09:00"},
		},
		{
			name: "legacy bad day",
			cfg:  AvailabilityConfig{WorkingDays: []Weekday{"Funday"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSchedule(tt.cfg)
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestAvailabilityConfig_Validate(t *testing.T) {
	valid := AvailabilityConfig{
		DaySchedules: map[Weekday][]ScheduleEntry{
			Monday: {{Kind: EntryWindow, Start: "09:00", End: "10:00"}},
		},
		SlotDuration: ptr.Ptr(0),
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.SlotDuration = ptr.Ptr(-5)
	assert.ErrorIs(t, negative.Validate(), ErrConfigInvalid)

	tooLong := valid
	tooLong.SlotDuration = ptr.Ptr(MaxSlotDurationMinutes + 1)
	assert.ErrorIs(t, tooLong.Validate(), ErrConfigInvalid)
}

func TestAvailabilityConfig_SlotDurationMinutes(t *testing.T) {
	assert.Equal(t, DefaultSlotDurationMinutes, AvailabilityConfig{}.SlotDurationMinutes())
	assert.Equal(t, 0, AvailabilityConfig{SlotDuration: ptr.Ptr(0)}.SlotDurationMinutes())
	assert.Equal(t, 45, AvailabilityConfig{SlotDuration: ptr.Ptr(45)}.SlotDurationMinutes())
}

func TestAvailabilityConfig_JSON(t *testing.T) {
	payload := `{
		"day_schedules": {
			"Mon": [{"start": "09:00", "end": "12:00"}, {"type": "specific", "start": "15:00"}]
		},
		"slot_duration": 0
	}`

	var cfg AvailabilityConfig
	require.NoError(t, json.Unmarshal([]byte(payload), &cfg))

	require.Len(t, cfg.DaySchedules[Monday], 2)
	assert.Equal(t, EntryWindow, cfg.DaySchedules[Monday][0].Kind)
	assert.Equal(t, EntrySpecific, cfg.DaySchedules[Monday][1].Kind)
	require.NotNil(t, cfg.SlotDuration)
	assert.Equal(t, 0, cfg.SlotDurationMinutes())
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 понедельник
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
}
