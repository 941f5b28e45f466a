package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// occupied активная сессия в минутах от полуночи
type occupied struct {
	start     int
	end       int
	id        int64
	trainerID int64
	day       int
}

// ReconcileDay разбивает доступные интервалы шаблона на свободные и занятые
// подинтервалы, вычитая активные сессии. Какие сессии учитывать (конкретная дата
// или все будущие даты этого дня недели) решает вызывающий код.
//
// Для каждого доступного интервала [S, E):
//   - сессии, пересекающиеся с интервалом, сортируются по (start, end, id)
//   - курсор t = S; каждая сессия обрезается до [max(S,s), min(E,e))
//   - если t < начала обрезанной сессии, выдаётся свободный [t, начало)
//   - занятый подинтервал выдаётся только от max(t, начало), поэтому
//     пересекающиеся между собой сессии не дают наложения подинтервалов
//   - t = max(t, конец); после последней сессии выдаётся хвост [t, E)
//
// Пример: шаблон 09:00-17:00, сессии 10:00-11:00 и 10:30-12:00
// → 09:00-10:00 свободно, 10:00-11:00 занято (#1), 11:00-12:00 занято (#2), 12:00-17:00 свободно
//
// Недоступные интервалы шаблона возвращаются как есть. Сессии, не попавшие ни в один
// доступный интервал (шаблон изменили после бронирования), возвращаются занятыми
// подинтервалами с IsAvailable = false: расхождение показывается, но не исправляется.
//
// Результат детерминирован: одинаковый вход даёт одинаковый выход.
func ReconcileDay(template []domain.AvailabilitySlot, sessions []*domain.Session) ([]domain.AvailabilitySlot, error) {
	busy, err := activeIntervals(sessions)
	if err != nil {
		return nil, err
	}

	ordered := append([]domain.AvailabilitySlot(nil), template...)
	if err := sortByStart(ordered); err != nil {
		return nil, err
	}

	result := make([]domain.AvailabilitySlot, 0, len(ordered)+2*len(busy))
	covered := make([]bool, len(busy))

	for _, slot := range ordered {
		slot.IsBooked = false
		slot.SessionID = nil

		if !slot.IsAvailable {
			result = append(result, slot)
			continue
		}

		start, end, err := slot.Interval().Bounds()
		if err != nil {
			return nil, err
		}

		parts, err := splitInterval(slot, start, end, busy, covered)
		if err != nil {
			return nil, err
		}
		result = append(result, parts...)
	}

	for i, b := range busy {
		if covered[i] {
			continue
		}
		parent := domain.AvailabilitySlot{TrainerID: b.trainerID, DayOfWeek: b.day}
		orphan, err := subSlot(parent, b.start, b.end, false, true, b.id)
		if err != nil {
			return nil, err
		}
		result = append(result, orphan)
	}

	if err := sortByStart(result); err != nil {
		return nil, err
	}

	return result, nil
}

// splitInterval проходит курсором по сессиям внутри одного доступного интервала
func splitInterval(slot domain.AvailabilitySlot, start, end int, busy []occupied, covered []bool) ([]domain.AvailabilitySlot, error) {
	parts := make([]domain.AvailabilitySlot, 0, 1)
	cursor := start

	for i, b := range busy {
		if !domain.Overlaps(start, end, b.start, b.end) {
			continue
		}
		covered[i] = true

		clippedStart := max(start, b.start)
		clippedEnd := min(end, b.end)

		if cursor < clippedStart {
			free, err := subSlot(slot, cursor, clippedStart, true, false, 0)
			if err != nil {
				return nil, err
			}
			parts = append(parts, free)
		}

		bookedStart := max(cursor, clippedStart)
		if bookedStart < clippedEnd {
			booked, err := subSlot(slot, bookedStart, clippedEnd, true, true, b.id)
			if err != nil {
				return nil, err
			}
			parts = append(parts, booked)
		}

		cursor = max(cursor, clippedEnd)
	}

	if cursor < end {
		free, err := subSlot(slot, cursor, end, true, false, 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, free)
	}

	return parts, nil
}

func subSlot(parent domain.AvailabilitySlot, start, end int, available, booked bool, sessionID int64) (domain.AvailabilitySlot, error) {
	s, err := types.FromMinutes(start)
	if err != nil {
		return domain.AvailabilitySlot{}, err
	}
	e, err := types.FromMinutes(end)
	if err != nil {
		return domain.AvailabilitySlot{}, err
	}

	slot := domain.AvailabilitySlot{
		ID:          parent.ID,
		TrainerID:   parent.TrainerID,
		DayOfWeek:   parent.DayOfWeek,
		Start:       s,
		End:         e,
		IsAvailable: available,
		IsBooked:    booked,
	}
	if booked {
		id := sessionID
		slot.SessionID = &id
	}
	return slot, nil
}

// activeIntervals отбирает активные сессии и сортирует их по (start, end, id)
func activeIntervals(sessions []*domain.Session) ([]occupied, error) {
	busy := make([]occupied, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || !s.IsActive() {
			continue
		}
		start, end, err := s.Interval().Bounds()
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", s.ID, err)
		}
		if end <= start {
			continue
		}
		busy = append(busy, occupied{
			start:     start,
			end:       end,
			id:        s.ID,
			trainerID: s.TrainerID,
			day:       domain.DayOfWeekOf(s.Date),
		})
	}

	sort.Slice(busy, func(i, j int) bool {
		if busy[i].start != busy[j].start {
			return busy[i].start < busy[j].start
		}
		if busy[i].end != busy[j].end {
			return busy[i].end < busy[j].end
		}
		return busy[i].id < busy[j].id
	})

	return busy, nil
}

func sortByStart(slots []domain.AvailabilitySlot) error {
	keys := make([][2]int, len(slots))
	for i, s := range slots {
		start, end, err := s.Interval().Bounds()
		if err != nil {
			return err
		}
		keys[i] = [2]int{start, end}
	}

	idx := make([]int, len(slots))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka[0] != kb[0] {
			return ka[0] < kb[0]
		}
		return ka[1] < kb[1]
	})

	sorted := make([]domain.AvailabilitySlot, len(slots))
	for i, j := range idx {
		sorted[i] = slots[j]
	}
	copy(slots, sorted)
	return nil
}

// FreeIntervals возвращает только свободные подинтервалы
func FreeIntervals(slots []domain.AvailabilitySlot) []domain.AvailabilitySlot {
	free := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		if s.IsFree() {
			free = append(free, s)
		}
	}
	return free
}

// HasAvailableTemplate проверяет, есть ли в шаблоне дня хотя бы один доступный интервал
func HasAvailableTemplate(template []domain.AvailabilitySlot) bool {
	for _, s := range template {
		if s.IsAvailable {
			return true
		}
	}
	return false
}

// ReconcileDate пересчёт для конкретной даты: шаблон дня недели этой даты минус
// активные сессии ровно на эту дату. Сессия excludeSessionID не учитывается
// (перенос сессии не должен конфликтовать со своим старым интервалом)
func ReconcileDate(template []domain.AvailabilitySlot, sessions []*domain.Session, date time.Time, excludeSessionID *int64) ([]domain.AvailabilitySlot, error) {
	day := domain.DayOfWeekOf(date)

	dayTemplate := make([]domain.AvailabilitySlot, 0, len(template))
	for _, slot := range template {
		if slot.DayOfWeek == day {
			dayTemplate = append(dayTemplate, slot)
		}
	}

	daySessions := make([]*domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || !domain.SameDay(s.Date, date) {
			continue
		}
		if excludeSessionID != nil && s.ID == *excludeSessionID {
			continue
		}
		daySessions = append(daySessions, s)
	}

	return ReconcileDay(dayTemplate, daySessions)
}
