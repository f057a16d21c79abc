package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"churchconnect/internal/models"
)

type fakeBookingRepo struct {
	nextID int64
	rows   map[int64]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{rows: map[int64]*models.Booking{}}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id int64) (*models.Booking, error) {
	b, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ActiveByChurchAndDate(churchID int64, date time.Time) ([]models.Booking, error) {
	active := map[models.BookingStatus]bool{}
	for _, s := range models.ActiveBookingStatuses {
		active[s] = true
	}
	var out []models.Booking
	for _, b := range r.rows {
		if b.ChurchID == churchID && b.Date.Equal(date) && active[b.Status] {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(id int64, to models.BookingStatus) error {
	if b, ok := r.rows[id]; ok {
		b.Status = to
	}
	return nil
}

func (r *fakeBookingRepo) List(filter models.BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.rows {
		if filter.ChurchID != 0 && b.ChurchID != filter.ChurchID {
			continue
		}
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus() (map[models.BookingStatus]int, error) {
	counts := map[models.BookingStatus]int{}
	for _, b := range r.rows {
		counts[b.Status]++
	}
	return counts, nil
}

type fakeServiceStore struct {
	services map[int64]*models.Service
}

func (s *fakeServiceStore) GetByID(id int64) (*models.Service, error) {
	return s.services[id], nil
}

type fakeAvailabilityStore struct {
	closed map[string]bool // "churchID|2006-01-02"
}

func (s *fakeAvailabilityStore) GetForDate(churchID int64, date time.Time) (*models.Availability, error) {
	key := availKey(churchID, date)
	if s.closed[key] {
		return &models.Availability{ChurchID: churchID, Date: date, IsClosed: true}, nil
	}
	return nil, nil
}

func availKey(churchID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", churchID, date.Format("2006-01-02"))
}

type fakeNotificationRepo struct {
	created []models.Notification
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID, limit, offset int) ([]models.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) UnreadCount(userID int) (int, error) { return 0, nil }
func (r *fakeNotificationRepo) MarkRead(id int64, userID int) error { return nil }
func (r *fakeNotificationRepo) MarkAllRead(userID int) error        { return nil }

func newTestBooking(t *testing.T) (BookingService, *fakeBookingRepo, *fakeAvailabilityStore, *fakeNotificationRepo, *fixedClock) {
	t.Helper()
	repo := newFakeBookingRepo()
	svcStore := &fakeServiceStore{services: map[int64]*models.Service{
		1: {ID: 1, ChurchID: 10, Name: "Baptism", AdvanceBookingDays: 90, IsActive: true},
	}}
	avail := &fakeAvailabilityStore{closed: map[string]bool{}}
	notifs := &fakeNotificationRepo{}
	clock := &fixedClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewBookingServiceWithClock(repo, svcStore, avail, notifs, nil, clock)
	return svc, repo, avail, notifs, clock
}

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestCreateBooking(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	b, conflicts, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.NoError(t, err)
	require.Equal(t, models.BookingRequested, b.Status)
	require.Equal(t, int64(10), b.ChurchID)
	require.NotEmpty(t, b.RefCode)
	require.Empty(t, conflicts)
}

func TestCreateBookingTodayAllowed(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	_, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(0)})
	require.NoError(t, err)
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	_, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(-1)})
	require.ErrorIs(t, err, ErrDateInPast)
}

func TestCreateBookingRejectsDateBeyondWindow(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	// day 90 is the last allowed; day 91 is out
	_, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(90)})
	require.NoError(t, err)

	_, _, err = svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(91)})
	require.ErrorIs(t, err, ErrDateTooFar)
}

func TestCreateBookingRejectsClosedDate(t *testing.T) {
	svc, _, avail, _, _ := newTestBooking(t)
	avail.closed[availKey(10, day(5))] = true

	_, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.ErrorIs(t, err, ErrDateClosed)
}

func TestCreateBookingReportsConflictsButSucceeds(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	first, conflicts, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.NoError(t, err)
	require.Empty(t, conflicts)

	second, conflicts, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 8, Date: day(5)})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, first.ID, conflicts[0].ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestCanceledBookingsDoNotConflict(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	first, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(first.ID, models.BookingCanceled)
	require.NoError(t, err)

	_, conflicts, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 8, Date: day(5)})
	require.NoError(t, err)
	require.Empty(t, conflicts)
}

func TestStatusTransitions(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	b, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.NoError(t, err)

	// requested -> completed skips review and approval
	_, err = svc.UpdateStatus(b.ID, models.BookingCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	for _, to := range []models.BookingStatus{
		models.BookingReviewed, models.BookingApproved, models.BookingCompleted,
	} {
		updated, err := svc.UpdateStatus(b.ID, to)
		require.NoError(t, err)
		require.Equal(t, to, updated.Status)
	}

	// completed is terminal
	_, err = svc.UpdateStatus(b.ID, models.BookingCanceled)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStatusUpdateNotifiesRequester(t *testing.T) {
	svc, _, _, notifs, _ := newTestBooking(t)

	b, _, err := svc.Create(&models.Booking{ServiceID: 1, UserID: 7, Date: day(5)})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(b.ID, models.BookingReviewed)
	require.NoError(t, err)

	require.Len(t, notifs.created, 1)
	require.Equal(t, 7, notifs.created[0].UserID)
	require.Equal(t, models.NotifyBookingStatus, notifs.created[0].Type)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	_, err := svc.UpdateStatus(999, models.BookingReviewed)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateBookingUnknownService(t *testing.T) {
	svc, _, _, _, _ := newTestBooking(t)

	_, _, err := svc.Create(&models.Booking{ServiceID: 42, UserID: 7, Date: day(5)})
	require.Error(t, err)
}
