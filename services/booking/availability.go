package booking

import (
	"context"
	"fmt"
	"time"

	"salonflow/config"
	"salonflow/models"
	"salonflow/utils"

	"go.uber.org/zap"
)

const slotInterval = 30 // minutes between candidate starts

// DayHours is the opening window for one weekday, minutes from midnight.
// Open == Close means the day is closed.
type DayHours struct {
	Open  int
	Close int
}

// BusinessHours maps weekdays to opening windows.
type BusinessHours map[time.Weekday]DayHours

// DefaultBusinessHours builds the salon's opening week from configuration,
// falling back to the standard week (weekdays 09:00-17:00, Saturday
// 08:00-16:00, closed Sundays) when a window is unset or inverted.
func DefaultBusinessHours() BusinessHours {
	weekday := DayHours{Open: config.AppConfig.WeekdayOpenMinute, Close: config.AppConfig.WeekdayCloseMinute}
	if weekday.Open >= weekday.Close {
		weekday = DayHours{Open: 9 * 60, Close: 17 * 60}
	}
	saturday := DayHours{Open: config.AppConfig.SaturdayOpenMinute, Close: config.AppConfig.SaturdayCloseMinute}
	if saturday.Open >= saturday.Close {
		saturday = DayHours{Open: 8 * 60, Close: 16 * 60}
	}

	hours := BusinessHours{
		time.Saturday: saturday,
		time.Sunday:   {},
	}
	for d := time.Monday; d <= time.Friday; d++ {
		hours[d] = weekday
	}
	return hours
}

// peakWindow is a demand band in minutes from midnight.
type peakWindow struct {
	start, end int
}

// Mid-morning and early-evening bands carry the peak surcharge.
var peakWindows = []peakWindow{
	{start: 10 * 60, end: 12 * 60},
	{start: 17 * 60, end: 19 * 60},
}

// AvailabilityResolver turns business hours, a staff roster and a duration
// requirement into the per-date slot view the wizard renders.
type AvailabilityResolver struct {
	Hours  BusinessHours
	Roster RosterSource
}

// NewAvailabilityResolver builds a resolver over the given roster source
// with the default opening week.
func NewAvailabilityResolver(roster RosterSource) *AvailabilityResolver {
	return &AvailabilityResolver{
		Hours:  DefaultBusinessHours(),
		Roster: roster,
	}
}

// Resolve computes the slot view for one date. durationMinutes is the summed
// length of the selected services; serviceID scopes the upstream roster
// query. Roster failures degrade to an optimistic business-hours template —
// availability display is best-effort, never a hard error.
func (r *AvailabilityResolver) Resolve(ctx context.Context, date string, durationMinutes int, serviceID string) (*models.DateAvailability, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if durationMinutes <= 0 {
		durationMinutes = slotInterval
	}

	hours, ok := r.Hours[day.Weekday()]
	if !ok || hours.Open >= hours.Close {
		return &models.DateAvailability{
			Date:      date,
			Available: false,
			Slots:     []models.TimeSlot{},
		}, nil
	}

	roster, rosterErr := r.Roster.RosterFor(ctx, date, serviceID)
	if rosterErr != nil {
		utils.GetLogger().Warn("roster source unavailable, using business-hours template",
			zap.String("date", date), zap.Error(rosterErr))
		roster = nil
	}

	slots := []models.TimeSlot{}
	for start := hours.Open; start+durationMinutes <= hours.Close; start += slotInterval {
		slots = append(slots, buildSlot(start, durationMinutes, roster))
	}

	totalAvailable := 0
	peak := false
	for _, slot := range slots {
		if slot.Available {
			totalAvailable++
		}
		if slot.DemandLevel == models.DemandHigh {
			peak = true
		}
	}

	view := &models.DateAvailability{
		Date:                date,
		Available:           totalAvailable > 0,
		Slots:               slots,
		TotalAvailableSlots: totalAvailable,
		PeakHours:           peak,
	}
	if day.Weekday() == time.Saturday {
		view.SpecialEvents = []string{"Saturday Special Offers"}
	}
	return view, nil
}

// buildSlot assembles one candidate slot. A nil roster means the staff data
// source was unreachable: the slot is offered optimistically with no staff
// or conflict annotations.
func buildSlot(start, duration int, roster *models.Roster) models.TimeSlot {
	slot := models.TimeSlot{
		Time:            minutesToClock(start),
		DurationMinutes: duration,
		EligibleStaff:   []models.StaffStatus{},
	}
	end := start + duration

	if roster == nil {
		slot.Available = true
		slot.DemandLevel = demandLevel(true, start, end)
		slot.PriceAdjustment = surchargeFor(slot.DemandLevel)
		return slot
	}

	for _, block := range roster.Conflicts {
		if overlaps(start, end, block.Start, block.End) {
			slot.Conflicts = append(slot.Conflicts, block.Reason)
		}
	}

	if len(slot.Conflicts) == 0 {
		seen := make(map[string]bool)
		var busyReasons []string
		for _, staff := range roster.Staff {
			free, reason := staffFree(staff, start, end)
			if free {
				slot.EligibleStaff = append(slot.EligibleStaff, models.StaffStatus{
					ID:        staff.ID,
					Name:      staff.Name,
					Available: true,
				})
				continue
			}
			if !seen[reason] {
				seen[reason] = true
				busyReasons = append(busyReasons, reason)
			}
		}
		// Surface what blocked the slot when nobody can take it.
		if len(slot.EligibleStaff) == 0 {
			slot.Conflicts = busyReasons
		}
	}

	slot.Available = len(slot.EligibleStaff) > 0
	slot.DemandLevel = demandLevel(slot.Available, start, end)
	slot.PriceAdjustment = surchargeFor(slot.DemandLevel)
	return slot
}

// staffFree reports whether the staff member is uncommitted over the whole
// [start, end) interval, returning the blocking reason when not.
func staffFree(staff models.StaffDay, start, end int) (bool, string) {
	for _, block := range staff.Busy {
		if overlaps(start, end, block.Start, block.End) {
			reason := block.Reason
			if reason == "" {
				reason = "Busy with other appointment"
			}
			return false, reason
		}
	}
	return true, ""
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// demandLevel classifies a slot: unavailable slots are low demand and never
// surcharged; available slots overlapping a peak band are high, the rest
// medium.
func demandLevel(available bool, start, end int) string {
	if !available {
		return models.DemandLow
	}
	for _, w := range peakWindows {
		if overlaps(start, end, w.start, w.end) {
			return models.DemandHigh
		}
	}
	return models.DemandMedium
}

func surchargeFor(level string) int64 {
	if level == models.DemandHigh {
		return config.AppConfig.PeakSurcharge
	}
	return 0
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
