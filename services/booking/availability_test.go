package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"salonflow/config"
	"salonflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRoster returns a canned roster, or an error to exercise the
// business-hours fallback.
type stubRoster struct {
	roster *models.Roster
	err    error
	calls  int
}

func (s *stubRoster) RosterFor(ctx context.Context, date, serviceID string) (*models.Roster, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.roster, nil
}

func newTestResolver(src RosterSource) *AvailabilityResolver {
	return &AvailabilityResolver{Hours: DefaultBusinessHours(), Roster: src}
}

func TestResolveClosedDay(t *testing.T) {
	r := newTestResolver(&stubRoster{err: errors.New("should not be called")})

	// 2026-09-06 is a Sunday.
	view, err := r.Resolve(context.Background(), "2026-09-06", 60, "swedish-massage")
	require.NoError(t, err)

	assert.False(t, view.Available)
	assert.Empty(t, view.Slots)
	assert.Zero(t, view.TotalAvailableSlots)
}

func TestResolveInvalidDate(t *testing.T) {
	r := newTestResolver(&stubRoster{})
	_, err := r.Resolve(context.Background(), "07/09/2026", 60, "")
	assert.Error(t, err)
}

func TestResolveRosterFailureFallsBackToTemplate(t *testing.T) {
	src := &stubRoster{err: errors.New("upstream down")}
	r := newTestResolver(src)

	// Monday 09:00-17:00, 60-minute appointments: starts every 30 minutes,
	// last one at 16:00.
	view, err := r.Resolve(context.Background(), "2026-09-07", 60, "")
	require.NoError(t, err)

	assert.True(t, view.Available)
	assert.Len(t, view.Slots, 15)
	assert.Equal(t, "09:00", view.Slots[0].Time)
	assert.Equal(t, "16:00", view.Slots[len(view.Slots)-1].Time)
	for _, slot := range view.Slots {
		assert.True(t, slot.Available)
		assert.Empty(t, slot.EligibleStaff)
		assert.Empty(t, slot.Conflicts)
	}
	assert.Equal(t, 1, src.calls)
}

func TestResolveSlotsFitInsideClosing(t *testing.T) {
	r := newTestResolver(&stubRoster{err: errors.New("down")})

	// A 120-minute appointment on a Monday must end by 17:00, so the last
	// start is 15:00.
	view, err := r.Resolve(context.Background(), "2026-09-07", 120, "")
	require.NoError(t, err)

	assert.Len(t, view.Slots, 13)
	assert.Equal(t, "15:00", view.Slots[len(view.Slots)-1].Time)
	for _, slot := range view.Slots {
		assert.Equal(t, 120, slot.DurationMinutes)
	}
}

func TestResolvePeakDemandAndSurcharge(t *testing.T) {
	r := newTestResolver(&stubRoster{err: errors.New("down")})

	view, err := r.Resolve(context.Background(), "2026-09-07", 60, "")
	require.NoError(t, err)

	byTime := make(map[string]models.TimeSlot)
	for _, slot := range view.Slots {
		byTime[slot.Time] = slot
	}

	// 09:00-10:00 ends exactly when the mid-morning band starts.
	assert.Equal(t, models.DemandMedium, byTime["09:00"].DemandLevel)
	assert.Zero(t, byTime["09:00"].PriceAdjustment)

	assert.Equal(t, models.DemandHigh, byTime["10:00"].DemandLevel)
	assert.Equal(t, int64(2000), byTime["10:00"].PriceAdjustment)

	assert.True(t, view.PeakHours)
}

func TestResolveAllStaffBusy(t *testing.T) {
	src := &stubRoster{roster: &models.Roster{
		Date: "2026-09-07",
		Staff: []models.StaffDay{
			{ID: "s1", Name: "Amara", Busy: []models.BusyInterval{{Start: 0, End: 24 * 60, Reason: "On leave"}}},
			{ID: "s2", Name: "Lebo", Busy: []models.BusyInterval{{Start: 0, End: 24 * 60}}},
		},
	}}
	r := newTestResolver(src)

	view, err := r.Resolve(context.Background(), "2026-09-07", 60, "")
	require.NoError(t, err)

	// The grid is still rendered; every slot is just unavailable.
	assert.False(t, view.Available)
	assert.Len(t, view.Slots, 15)
	for _, slot := range view.Slots {
		assert.False(t, slot.Available)
		assert.Empty(t, slot.EligibleStaff)
		assert.Equal(t, models.DemandLow, slot.DemandLevel)
		assert.Zero(t, slot.PriceAdjustment)
		assert.Contains(t, slot.Conflicts, "On leave")
		assert.Contains(t, slot.Conflicts, "Busy with other appointment")
	}
}

func TestResolvePartiallyBusyStaff(t *testing.T) {
	src := &stubRoster{roster: &models.Roster{
		Date: "2026-09-07",
		Staff: []models.StaffDay{
			{ID: "s1", Name: "Amara", Busy: []models.BusyInterval{{Start: 9 * 60, End: 11 * 60, Reason: "Client appointment"}}},
			{ID: "s2", Name: "Lebo"},
		},
	}}
	r := newTestResolver(src)

	view, err := r.Resolve(context.Background(), "2026-09-07", 60, "")
	require.NoError(t, err)

	byTime := make(map[string]models.TimeSlot)
	for _, slot := range view.Slots {
		byTime[slot.Time] = slot
	}

	morning := byTime["09:00"]
	assert.True(t, morning.Available)
	assert.Len(t, morning.EligibleStaff, 1)
	assert.Equal(t, "Lebo", morning.EligibleStaff[0].Name)
	assert.Empty(t, morning.Conflicts, "conflicts only surface when nobody can take the slot")

	afternoon := byTime["14:00"]
	assert.Len(t, afternoon.EligibleStaff, 2)
}

func TestResolveVenueConflictBlocksSlot(t *testing.T) {
	src := &stubRoster{roster: &models.Roster{
		Date: "2026-09-07",
		Staff: []models.StaffDay{
			{ID: "s1", Name: "Amara"},
		},
		Conflicts: []models.BusyInterval{
			{Start: 12 * 60, End: 13 * 60, Reason: "Deep cleaning"},
		},
	}}
	r := newTestResolver(src)

	view, err := r.Resolve(context.Background(), "2026-09-07", 30, "")
	require.NoError(t, err)

	byTime := make(map[string]models.TimeSlot)
	for _, slot := range view.Slots {
		byTime[slot.Time] = slot
	}

	blocked := byTime["12:00"]
	assert.False(t, blocked.Available)
	assert.Contains(t, blocked.Conflicts, "Deep cleaning")
	assert.Empty(t, blocked.EligibleStaff)

	assert.True(t, byTime["13:00"].Available)
}

func TestResolveOversizedDurationYieldsEmptySlotList(t *testing.T) {
	r := newTestResolver(&stubRoster{err: errors.New("down")})

	// A 500-minute appointment cannot fit a Monday's 480-minute window. The
	// open day must still serialize with an empty slot array, same shape as
	// a closed day.
	view, err := r.Resolve(context.Background(), "2026-09-07", 500, "")
	require.NoError(t, err)

	assert.False(t, view.Available)
	require.NotNil(t, view.Slots)
	assert.Empty(t, view.Slots)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"slots":[]`)
}

func TestBusinessHoursFromConfig(t *testing.T) {
	restore := config.AppConfig
	defer func() { config.AppConfig = restore }()

	config.AppConfig.WeekdayOpenMinute = 10 * 60
	config.AppConfig.WeekdayCloseMinute = 18 * 60
	config.AppConfig.SaturdayOpenMinute = 9 * 60
	config.AppConfig.SaturdayCloseMinute = 13 * 60

	hours := DefaultBusinessHours()
	assert.Equal(t, DayHours{Open: 600, Close: 1080}, hours[time.Monday])
	assert.Equal(t, DayHours{Open: 540, Close: 780}, hours[time.Saturday])
	assert.Equal(t, DayHours{}, hours[time.Sunday])

	// Inverted or unset windows fall back to the standard week.
	config.AppConfig.WeekdayOpenMinute = 0
	config.AppConfig.WeekdayCloseMinute = 0
	hours = DefaultBusinessHours()
	assert.Equal(t, DayHours{Open: 540, Close: 1020}, hours[time.Friday])
}

func TestResolveSaturdaySpecials(t *testing.T) {
	r := newTestResolver(&stubRoster{err: errors.New("down")})

	// 2026-09-05 is a Saturday, 08:00-16:00.
	view, err := r.Resolve(context.Background(), "2026-09-05", 60, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Saturday Special Offers"}, view.SpecialEvents)
	assert.Equal(t, "08:00", view.Slots[0].Time)
	assert.Equal(t, "15:00", view.Slots[len(view.Slots)-1].Time)
}
