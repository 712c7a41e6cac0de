package queue

import "github.com/spec-kit/support-queue/internal/domain"

// SlotAvailability holds per-slot booking counts for one date.
type SlotAvailability struct {
	Date   string
	Labels []string
	Counts map[string]int
	Max    int
}

// Full reports whether the slot has reached capacity.
func (a SlotAvailability) Full(slot string) bool {
	return a.Counts[slot] >= a.Max
}

// Availability counts bookings per slot label for date across every
// container, the completed log included.
func (s *Store) Availability(date string) SlotAvailability {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.opts.SlotLabels))
	for _, label := range s.opts.SlotLabels {
		counts[label] = 0
	}
	s.eachLocked(func(issue *domain.Issue) {
		if issue.BookingDate == nil || issue.BookingSlot == nil || *issue.BookingDate != date {
			return
		}
		if _, ok := counts[*issue.BookingSlot]; ok {
			counts[*issue.BookingSlot]++
		}
	})
	return SlotAvailability{
		Date:   date,
		Labels: append([]string{}, s.opts.SlotLabels...),
		Counts: counts,
		Max:    s.opts.MaxBookingsPerSlot,
	}
}

// bookingCountLocked counts bookings for date and slot, ignoring the issue
// being booked so a reschedule never counts against itself.
func (s *Store) bookingCountLocked(date, slot, excludeID string) int {
	count := 0
	s.eachLocked(func(issue *domain.Issue) {
		if issue.ID != excludeID && issue.BookedInto(date, slot) {
			count++
		}
	})
	return count
}
