package get_eligible_employees

import "github.com/manueles91/stella-booking-service/internal/domain"

// EmployeeResponse HTTP модель мастера
type EmployeeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListResponse HTTP модель ответа со списком мастеров.
// Пустой список - валидный ответ: на позицию может не быть
// ни одного сертифицированного мастера.
type ListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// FromDomainEmployees конвертирует список мастеров в HTTP модель
func FromDomainEmployees(employees []*domain.Employee) *ListResponse {
	resp := &ListResponse{Employees: make([]EmployeeResponse, 0, len(employees))}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, EmployeeResponse{
			ID:   e.ID,
			Name: e.Name,
		})
	}
	return resp
}
