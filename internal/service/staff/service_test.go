package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/staff"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	employees []*domain.Employee
}

func (r *fakeRepo) ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return r.employees, nil
}

func (r *fakeRepo) GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, storage.ErrEmployeeNotFound
}

func serviceItem(serviceID int64) *domain.BookableItem {
	return &domain.BookableItem{Type: domain.ItemService, ID: serviceID}
}

func comboItem(serviceIDs ...int64) *domain.BookableItem {
	item := &domain.BookableItem{Type: domain.ItemCombo, ID: 100}
	for _, id := range serviceIDs {
		item.Constituents = append(item.Constituents, domain.ComboConstituent{ServiceID: id})
	}
	return item
}

func TestListEligibleEmployees_Service(t *testing.T) {
	repo := &fakeRepo{employees: []*domain.Employee{
		{ID: 1, Name: "Ana", IsActive: true, CertifiedServiceIDs: []int64{10, 20}},
		{ID: 2, Name: "Marta", IsActive: true, CertifiedServiceIDs: []int64{20}},
	}}

	eligible, err := NewService(repo, nopLogger{}).ListEligibleEmployees(context.Background(), serviceItem(10))
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(1), eligible[0].ID)
}

func TestListEligibleEmployees_ComboRequiresAllCertifications(t *testing.T) {
	repo := &fakeRepo{employees: []*domain.Employee{
		{ID: 1, Name: "Ana", IsActive: true, CertifiedServiceIDs: []int64{10, 20, 30}},
		{ID: 2, Name: "Marta", IsActive: true, CertifiedServiceIDs: []int64{10}},
		{ID: 3, Name: "Lucía", IsActive: true, CertifiedServiceIDs: []int64{20, 30}},
	}}

	// Комбо из услуг 10 и 20: нужен один мастер на весь пакет
	eligible, err := NewService(repo, nopLogger{}).ListEligibleEmployees(context.Background(), comboItem(10, 20))
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(1), eligible[0].ID)
}

func TestListEligibleEmployees_EmptyIsNotError(t *testing.T) {
	repo := &fakeRepo{employees: []*domain.Employee{
		{ID: 1, Name: "Ana", IsActive: true, CertifiedServiceIDs: []int64{10}},
	}}

	eligible, err := NewService(repo, nopLogger{}).ListEligibleEmployees(context.Background(), serviceItem(99))
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestGetEmployee_NotFound(t *testing.T) {
	_, err := NewService(&fakeRepo{}, nopLogger{}).GetEmployee(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
