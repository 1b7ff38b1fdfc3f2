package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manueles91/stella-booking-service/internal/domain"
	getAvailableSlots "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeSlots отдаёт заранее заданный результат на каждую дату.
// Даты без записи считаются днями без слотов.
type fakeSlots struct {
	mu        sync.Mutex
	bookable  map[string]bool
	failDates map[string]error
	err       error // ошибка на любую дату
	calls     int
}

func (f *fakeSlots) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	key := req.Date.Format(domain.DateFormat)
	if err, ok := f.failDates[key]; ok {
		return nil, err
	}

	resp := &getAvailableSlots.Response{Date: req.Date}
	if f.bookable[key] {
		resp.Slots = []domain.Slot{{StartTime: types.TimeString("10:00"), DurationMinutes: 30, EmployeeID: 1, EmployeeName: "Ana"}}
	} else {
		resp.Reason = getAvailableSlots.ReasonNoAvailability
	}
	return resp, nil
}

func testPolicy() Policy {
	return Policy{Workers: 4, DayTimeout: time.Second, FetchRate: 1000, FetchBurst: 100}
}

func septemberRequest() *Request {
	return &Request{ClientID: 7, ItemType: domain.ItemService, ItemID: 1, Year: 2026, Month: time.September}
}

func TestExecute_MapsEveryDayOfMonth(t *testing.T) {
	slots := &fakeSlots{bookable: map[string]bool{
		"2026-09-01": true,
		"2026-09-15": true,
	}}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), septemberRequest())
	require.NoError(t, err)

	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, time.September, resp.Month)
	assert.Len(t, resp.Days, 30)
	assert.Equal(t, 30, slots.calls)

	assert.True(t, resp.Days["2026-09-01"].Bookable)
	assert.True(t, resp.Days["2026-09-15"].Bookable)
	assert.False(t, resp.Days["2026-09-02"].Bookable)
	assert.False(t, resp.Days["2026-09-02"].Failed)
	assert.Zero(t, resp.FailedDays)
}

func TestExecute_FebruaryLeapYear(t *testing.T) {
	slots := &fakeSlots{}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	req := septemberRequest()
	req.Year = 2028
	req.Month = time.February

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 29)
	_, ok := resp.Days["2028-02-29"]
	assert.True(t, ok)
}

func TestExecute_PartialFailureIsFlaggedPerDay(t *testing.T) {
	slots := &fakeSlots{
		bookable: map[string]bool{"2026-09-10": true},
		failDates: map[string]error{
			"2026-09-03": fmt.Errorf("%w: timeout", getAvailableSlots.ErrUpstreamUnavailable),
		},
	}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), septemberRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.FailedDays)
	assert.True(t, resp.Days["2026-09-03"].Failed)
	assert.False(t, resp.Days["2026-09-03"].Bookable)
	assert.True(t, resp.Days["2026-09-10"].Bookable)
}

func TestExecute_AllDaysFailed(t *testing.T) {
	slots := &fakeSlots{err: fmt.Errorf("%w: db down", getAvailableSlots.ErrUpstreamUnavailable)}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), septemberRequest())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_ItemNotFoundIsFatal(t *testing.T) {
	slots := &fakeSlots{err: fmt.Errorf("%w: item 1", getAvailableSlots.ErrItemNotFound)}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), septemberRequest())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_DataIntegrityIsFatal(t *testing.T) {
	slots := &fakeSlots{err: fmt.Errorf("%w: broken combo", getAvailableSlots.ErrDataIntegrity)}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), septemberRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewUseCase(&fakeSlots{}, testPolicy(), nil, nopLogger{})

	_, err := uc.Execute(ctx, septemberRequest())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeSlots{}, testPolicy(), nil, nopLogger{})

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown item type", func(r *Request) { r.ItemType = "massage" }},
		{"non-positive item id", func(r *Request) { r.ItemID = 0 }},
		{"year too small", func(r *Request) { r.Year = 1999 }},
		{"year too large", func(r *Request) { r.Year = 2101 }},
		{"month out of range", func(r *Request) { r.Month = 13 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := septemberRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestIsDateBookable(t *testing.T) {
	slots := &fakeSlots{bookable: map[string]bool{"2026-09-15": true}}
	uc := NewUseCase(slots, testPolicy(), nil, nopLogger{})

	ok, err := uc.IsDateBookable(context.Background(), septemberRequest(), time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsDateBookable(context.Background(), septemberRequest(), time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.False(t, ok)

	broken := errors.New("boom")
	slots.err = broken
	_, err = uc.IsDateBookable(context.Background(), septemberRequest(), time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local))
	assert.ErrorIs(t, err, broken)
}
