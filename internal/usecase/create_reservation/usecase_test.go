package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manueles91/stella-booking-service/internal/domain"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
	staffSvc "github.com/manueles91/stella-booking-service/internal/service/staff"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// 2026-09-15 - вторник, 2026-09-20 - воскресенье
var (
	tuesday = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	morning = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTimeProvider struct{ now time.Time }

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type fakeCatalog struct {
	item *domain.BookableItem
	err  error
}

func (f *fakeCatalog) GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, code string) (*domain.BookableItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

type fakeStaff struct {
	employee *domain.Employee
	err      error
}

func (f *fakeStaff) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employee, nil
}

type fakeAvailability struct {
	rows []*domain.EmployeeAvailability
	err  error
}

func (f *fakeAvailability) ListAvailabilityForWeekday(ctx context.Context, employeeIDs []int64, weekday int) ([]*domain.EmployeeAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeCommitments struct {
	reservations []*domain.Reservation
	blocked      []*domain.BlockedInterval
	created      *domain.Reservation
	createErr    error
}

func (f *fakeCommitments) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *res
	out.ID = 42
	out.CreatedAt = time.Date(2026, 9, 1, 8, 0, 1, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeCommitments) ListByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeCommitments) ListBlockedByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocked, nil
}

// fakeTxManager исполняет функцию в том же контексте без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.ParseTimeString(s)
	require.NoError(t, err)
	return ts
}

func testPolicy(t *testing.T) Policy {
	t.Helper()
	return Policy{
		CadenceMinutes: 30,
		BusinessHours:  types.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "18:00")},
		ClosedWeekdays: []int{0},
		PendingBlocks:  true,
	}
}

func haircut() *domain.BookableItem {
	return &domain.BookableItem{
		Type: domain.ItemService, ID: 1, Name: "Corte de pelo",
		DurationMinutes: 60, OriginalPriceCents: 5000, FinalPriceCents: 4000, SavingsCents: 1000,
	}
}

func ana() *domain.Employee {
	return &domain.Employee{ID: 1, Name: "Ana", IsActive: true, CertifiedServiceIDs: []int64{1}}
}

type fixture struct {
	catalog      *fakeCatalog
	staff        *fakeStaff
	availability *fakeAvailability
	commitments  *fakeCommitments
	uc           *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		catalog:      &fakeCatalog{item: haircut()},
		staff:        &fakeStaff{employee: ana()},
		availability: &fakeAvailability{},
		commitments:  &fakeCommitments{},
	}
	f.uc = NewUseCase(f.catalog, f.staff, f.availability, f.commitments, fakeTxManager{}, testPolicy(t), nopLogger{})
	f.uc.timeProvider = &fakeTimeProvider{now: now}
	return f
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ClientID:   7,
		EmployeeID: 1,
		ItemType:   domain.ItemService,
		ItemID:     1,
		Date:       tuesday,
		StartTime:  mustTime(t, "10:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, morning)

	req := validRequest(t)
	req.Notes = ptr.Ptr("sin secador")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Equal(t, int64(1), resp.EmployeeID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Снимок позиции денормализуется в запись
	assert.Equal(t, "Corte de pelo", resp.ItemName)
	assert.Equal(t, int64(4000), resp.PriceCents)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "sin secador", *resp.Notes)

	require.NotNil(t, f.commitments.created)
	assert.Equal(t, domain.StatusConfirmed, f.commitments.created.Status)
}

func TestExecute_ConflictWithExistingReservation(t *testing.T) {
	f := newFixture(t, morning)
	f.commitments.reservations = []*domain.Reservation{{
		ID: 100, EmployeeID: 1, Date: tuesday,
		StartTime: mustTime(t, "10:30"), DurationMinutes: 30,
		Status: domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AdjacentReservationDoesNotConflict(t *testing.T) {
	f := newFixture(t, morning)
	// Бронь 11:00-12:00 примыкает к кандидату 10:00-11:00
	f.commitments.reservations = []*domain.Reservation{{
		ID: 100, EmployeeID: 1, Date: tuesday,
		StartTime: mustTime(t, "11:00"), DurationMinutes: 60,
		Status: domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_PendingBlocksPolicy(t *testing.T) {
	pending := &domain.Reservation{
		ID: 100, EmployeeID: 1, Date: tuesday,
		StartTime: mustTime(t, "10:00"), DurationMinutes: 60,
		Status: domain.StatusPending,
	}

	f := newFixture(t, morning)
	f.commitments.reservations = []*domain.Reservation{pending}
	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	f = newFixture(t, morning)
	f.uc.policy.PendingBlocks = false
	f.commitments.reservations = []*domain.Reservation{pending}
	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_BlockedIntervalConflicts(t *testing.T) {
	f := newFixture(t, morning)
	f.commitments.blocked = []*domain.BlockedInterval{{
		ID: 1, EmployeeID: 1, Date: tuesday,
		Window: types.Interval{Start: mustTime(t, "10:30"), End: mustTime(t, "11:30")},
		Reason: "lunch",
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OffGridStartTime(t *testing.T) {
	f := newFixture(t, morning)

	req := validRequest(t)
	req.StartTime = mustTime(t, "10:15")

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OutsideWorkingWindows(t *testing.T) {
	f := newFixture(t, morning)
	// Мастер в этот день работает только до 10:30
	f.availability.rows = []*domain.EmployeeAvailability{{
		ID: 1, EmployeeID: 1, Weekday: 2,
		Window:      types.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "10:30")},
		IsAvailable: true,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_DayOffRowRejectsBooking(t *testing.T) {
	f := newFixture(t, morning)
	// Единственная запись расписания - явный выходной, часы салона
	// fallback'ом не подставляются
	f.availability.rows = []*domain.EmployeeAvailability{{
		ID: 1, EmployeeID: 1, Weekday: 2,
		Window:      types.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "18:00")},
		IsAvailable: false,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(t, time.Date(2026, 9, 16, 8, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	f := newFixture(t, morning)

	req := validRequest(t)
	req.Date = sunday

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedWeekday)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	// Сейчас ровно 10:00 - слот на 10:00 уже недоступен
	f := newFixture(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// А на 10:30 все еще можно
	f = newFixture(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))
	req := validRequest(t)
	req.StartTime = mustTime(t, "10:30")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ItemNotFound(t *testing.T) {
	f := newFixture(t, morning)
	f.catalog.err = catalogSvc.ErrItemNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_EmployeeNotFound(t *testing.T) {
	f := newFixture(t, morning)
	f.staff.err = staffSvc.ErrEmployeeNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_EmployeeNotEligible(t *testing.T) {
	f := newFixture(t, morning)
	f.staff.employee = &domain.Employee{ID: 1, Name: "Ana", IsActive: true, CertifiedServiceIDs: []int64{99}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrEmployeeNotEligible)
}

func TestExecute_BrokenItemDuration(t *testing.T) {
	f := newFixture(t, morning)
	f.catalog.item.DurationMinutes = 0

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestExecute_SlotCrossesMidnight(t *testing.T) {
	f := newFixture(t, morning)
	f.catalog.item.DurationMinutes = 600
	// Сетка позволяет 17:30, но 17:30 + 600 минут уходит за полночь
	req := validRequest(t)
	req.StartTime = mustTime(t, "17:30")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, morning)

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero client id", func(r *Request) { r.ClientID = 0 }},
		{"zero employee id", func(r *Request) { r.EmployeeID = 0 }},
		{"unknown item type", func(r *Request) { r.ItemType = "massage" }},
		{"zero item id", func(r *Request) { r.ItemID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"malformed start time", func(r *Request) { r.StartTime = types.TimeString("25:00") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(t)
			tc.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CreateFailure(t *testing.T) {
	f := newFixture(t, morning)
	f.commitments.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
}
