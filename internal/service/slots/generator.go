package slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// Generate строит упорядоченный список свободных слотов на дату.
//
// Порядок:
//  1. день недели без расписания - пустой список;
//  2. "specific" даёт один слот, "window" нарезается по slotDuration, неполный хвост отбрасывается;
//     при slotDuration = 0 окно становится одним слотом, а "specific" длится CustomSpecificSlotMinutes;
//  3. слоты, пересекающиеся с занимающими бронированиями, убираются (границы не пересекаются);
//  4. слоты, начавшиеся раньше now, убираются;
//  5. результат сортируется по началу, одинаковые (start, end) схлопываются.
//
// Время суток совмещается с календарным днём date в date.Location().
func Generate(schedule domain.Schedule, slotDuration int, date time.Time, bookings []*domain.Booking, now time.Time) ([]domain.Slot, error) {
	if slotDuration < 0 {
		return nil, fmt.Errorf("%w: negative slot duration %d", domain.ErrConfigInvalid, slotDuration)
	}

	entries, ok := schedule[domain.WeekdayOf(date)]
	if !ok || len(entries) == 0 {
		return []domain.Slot{}, nil
	}

	candidates := make([]domain.Slot, 0)
	for _, entry := range entries {
		generated, err := expandEntry(entry, slotDuration, date)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, generated...)
	}

	occupying := occupyingBookings(bookings, now)

	free := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if slot.Start.Before(now) {
			continue
		}
		if overlapsAny(slot, occupying) {
			continue
		}
		free = append(free, slot)
	}

	return sortUnique(free), nil
}

// expandEntry раскладывает запись расписания в слоты без учёта занятости
func expandEntry(entry domain.ScheduleEntry, slotDuration int, date time.Time) ([]domain.Slot, error) {
	start, err := entry.Start.OnDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: entry start %q: %v", domain.ErrConfigInvalid, entry.Start, err)
	}

	switch entry.Kind {
	case domain.EntrySpecific:
		minutes := slotDuration
		if minutes == 0 {
			minutes = domain.CustomSpecificSlotMinutes
		}
		return []domain.Slot{{
			Start: start,
			End:   start.Add(time.Duration(minutes) * time.Minute),
			Label: start.Format(domain.TimeFormat),
		}}, nil

	case domain.EntryWindow:
		end, err := entry.End.OnDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: entry end %q: %v", domain.ErrConfigInvalid, entry.End, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: window %s-%s", domain.ErrConfigInvalid, entry.Start, entry.End)
		}

		// Свободная длительность: всё окно одним слотом
		if slotDuration == 0 {
			return []domain.Slot{{
				Start: start,
				End:   end,
				Label: start.Format(domain.TimeFormat) + " - " + end.Format(domain.TimeFormat),
			}}, nil
		}

		step := time.Duration(slotDuration) * time.Minute
		result := make([]domain.Slot, 0)
		for current := start; !current.Add(step).After(end); current = current.Add(step) {
			result = append(result, domain.Slot{
				Start: current,
				End:   current.Add(step),
				Label: current.Format(domain.TimeFormat),
			})
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: unknown entry type %q", domain.ErrConfigInvalid, entry.Kind)
	}
}

// occupyingBookings бронирования, которые держат свой интервал в момент now
func occupyingBookings(bookings []*domain.Booking, now time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.OccupiesSlotAt(now) {
			result = append(result, b)
		}
	}
	return result
}

func overlapsAny(slot domain.Slot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Overlaps(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

func sortUnique(slots []domain.Slot) []domain.Slot {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Start.Equal(slots[j].Start) {
			return slots[i].End.Before(slots[j].End)
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if n := len(result); n > 0 && result[n-1].Matches(slot.Start, slot.End) {
			continue
		}
		result = append(result, slot)
	}
	return result
}

// Contains есть ли среди слотов интервал с ровно такими границами
func Contains(slots []domain.Slot, start, end time.Time) bool {
	for _, slot := range slots {
		if slot.Matches(start, end) {
			return true
		}
	}
	return false
}

// OccupancyRange интервал, бронирования из которого могут пересечься со слотами дня day.
// Слот начинается внутри дня, но "specific" в конце дня заканчивается уже после полуночи,
// не позже чем через MaxSlotDurationMinutes.
func OccupancyRange(day time.Time) (from, to time.Time) {
	return day, day.AddDate(0, 0, 1).Add(domain.MaxSlotDurationMinutes * time.Minute)
}
