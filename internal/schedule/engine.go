package schedule

// Appointment is the engine's read-only view of a booked visit. The engine
// never mutates appointments; callers pass a fresh snapshot on every query.
type Appointment struct {
	ID              string
	Clinician       string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM, normally one of the calendar labels
	DurationMinutes int
	Cancelled       bool
}

// SlotAvailability is one calendar slot plus whether selecting it for the
// queried duration would collide with an existing booking.
type SlotAvailability struct {
	Slot   string `json:"slot"`
	Booked bool   `json:"booked"`
}

// Engine answers slot-availability questions over an appointment snapshot.
// It is stateless apart from the calendar grid and safe for concurrent use.
type Engine struct {
	cal Calendar
}

func NewEngine(cal Calendar) *Engine {
	return &Engine{cal: cal}
}

func (e *Engine) Calendar() Calendar {
	return e.cal
}

// BlockedSlots expands a start time and duration into the consecutive
// calendar labels the booking occupies. Durations round up to whole slots,
// so a 45-minute visit reserves two 30-minute slots. A booking that would
// run past the end of the grid only blocks the slots that exist. A start
// time not on the grid blocks itself alone.
func (e *Engine) BlockedSlots(startTime string, durationMinutes int) []string {
	idx := e.cal.Index(startTime)
	if idx < 0 {
		return []string{startTime}
	}

	needed := (durationMinutes + SlotMinutes - 1) / SlotMinutes
	if needed < 1 {
		needed = 1
	}

	end := idx + needed
	if end > len(e.cal) {
		end = len(e.cal)
	}

	blocked := make([]string, 0, end-idx)
	for i := idx; i < end; i++ {
		blocked = append(blocked, e.cal[i])
	}
	return blocked
}

// OccupiedSlots returns the set of calendar labels reserved by non-cancelled
// appointments for the clinician and date. excludeID carves out the
// appointment currently being edited so it never conflicts with itself.
func (e *Engine) OccupiedSlots(appts []Appointment, clinician, date, excludeID string) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, a := range appts {
		if a.Cancelled || a.Clinician != clinician || a.Date != date {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		for _, slot := range e.BlockedSlots(a.StartTime, a.DurationMinutes) {
			occupied[slot] = struct{}{}
		}
	}
	return occupied
}

// WouldConflict reports whether booking the candidate start time for the
// given duration would overlap any occupied slot. Every bookability decision
// in the system routes through this predicate, including the save-time
// re-check, so the picker and the persistence guard cannot diverge.
func (e *Engine) WouldConflict(appts []Appointment, clinician, date, candidate string, durationMinutes int, excludeID string) bool {
	occupied := e.OccupiedSlots(appts, clinician, date, excludeID)
	for _, slot := range e.BlockedSlots(candidate, durationMinutes) {
		if _, ok := occupied[slot]; ok {
			return true
		}
	}
	return false
}

// AvailableSlots maps every calendar slot, in time order, to whether it can
// start a booking of the given duration. A slot counts as booked when it is
// itself occupied or when the tail slots a multi-slot booking would need
// are occupied.
func (e *Engine) AvailableSlots(appts []Appointment, clinician, date string, durationMinutes int, excludeID string) []SlotAvailability {
	occupied := e.OccupiedSlots(appts, clinician, date, excludeID)

	out := make([]SlotAvailability, 0, len(e.cal))
	for _, slot := range e.cal {
		_, taken := occupied[slot]
		booked := taken || e.conflicts(occupied, slot, durationMinutes)
		out = append(out, SlotAvailability{Slot: slot, Booked: booked})
	}
	return out
}

func (e *Engine) conflicts(occupied map[string]struct{}, candidate string, durationMinutes int) bool {
	for _, slot := range e.BlockedSlots(candidate, durationMinutes) {
		if _, ok := occupied[slot]; ok {
			return true
		}
	}
	return false
}

// FullyBookedDates returns the dates on which every calendar slot is spoken
// for across the clinician's non-cancelled appointments. A date qualifies
// when the count of distinct occupied slots reaches the calendar size,
// mirroring the calendar-disabling behavior the dashboard always had.
func (e *Engine) FullyBookedDates(appts []Appointment, clinician, excludeID string) map[string]struct{} {
	byDate := make(map[string]map[string]struct{})
	for _, a := range appts {
		if a.Cancelled || a.Clinician != clinician {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		occupied := byDate[a.Date]
		if occupied == nil {
			occupied = make(map[string]struct{})
			byDate[a.Date] = occupied
		}
		for _, slot := range e.BlockedSlots(a.StartTime, a.DurationMinutes) {
			occupied[slot] = struct{}{}
		}
	}

	full := make(map[string]struct{})
	for date, occupied := range byDate {
		if len(occupied) >= len(e.cal) {
			full[date] = struct{}{}
		}
	}
	return full
}

// FirstFree returns the earliest calendar slot that can start a booking of
// the given duration, in grid order. ok is false when the day has no room.
// Callers use this to reassign a selected time that a clinician, date or
// duration change has made invalid; it is a pure function of the snapshot,
// so re-running it without a relevant change returns the same slot.
func (e *Engine) FirstFree(appts []Appointment, clinician, date string, durationMinutes int, excludeID string) (string, bool) {
	for _, s := range e.AvailableSlots(appts, clinician, date, durationMinutes, excludeID) {
		if !s.Booked {
			return s.Slot, true
		}
	}
	return "", false
}
