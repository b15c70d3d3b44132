package services

// dutyWindow tracks on-duty hours over a fixed trailing window of days.
//
// The window is a ring buffer whose head slot always holds "today". Shifting
// to a new day moves the head onto the slot of the oldest tracked day and
// zeroes it, which evicts that day from the rolling total. All accruals
// target the head, so hours can never land on a previous day's slot.
type dutyWindow struct {
	days []float64
	head int
}

// newDutyWindow creates a window of the given size with initialHours already
// accrued against today.
func newDutyWindow(size int, initialHours float64) *dutyWindow {
	w := &dutyWindow{days: make([]float64, size)}
	w.days[w.head] = initialHours
	return w
}

// Accrue adds on-duty hours to today's slot.
func (w *dutyWindow) Accrue(hours float64) {
	w.days[w.head] += hours
}

// Total returns the duty hours accumulated over the whole trailing window.
func (w *dutyWindow) Total() float64 {
	total := 0.0
	for _, h := range w.days {
		total += h
	}
	return total
}

// Shift advances the window by one day: the oldest day is evicted and its
// slot becomes the fresh, zeroed slot for the new current day.
func (w *dutyWindow) Shift() {
	w.head = (w.head - 1 + len(w.days)) % len(w.days)
	w.days[w.head] = 0
}

// Reset zeroes the entire window, as after a 34-hour restart.
func (w *dutyWindow) Reset() {
	for i := range w.days {
		w.days[i] = 0
	}
}
