package testhelpers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"corpkit/internal/models"
	"corpkit/internal/store"
)

// MemoryCompanyStore is an in-process store.CompanyStore for tests that do
// not need Postgres. Err, when set, is returned by every call.
type MemoryCompanyStore struct {
	mu     sync.Mutex
	rows   map[int64]models.Company
	nextID int64

	Err error
}

var _ store.CompanyStore = (*MemoryCompanyStore)(nil)

func NewMemoryCompanyStore() *MemoryCompanyStore {
	return &MemoryCompanyStore{rows: map[int64]models.Company{}, nextID: 1}
}

func (m *MemoryCompanyStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *MemoryCompanyStore) Insert(_ context.Context, company *models.Company) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}

	if company.ID == 0 {
		company.ID = m.nextID
	}
	if company.ID >= m.nextID {
		m.nextID = company.ID + 1
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	m.rows[company.ID] = *company
	return 1, nil
}

// InsertSelective applies the status column default the way Postgres does.
func (m *MemoryCompanyStore) InsertSelective(ctx context.Context, company *models.Company) (int64, error) {
	stored := *company
	if stored.Status == nil {
		status := models.CompanyStatusActive
		stored.Status = &status
	}
	n, err := m.Insert(ctx, &stored)
	company.ID = stored.ID
	company.CreatedAt = stored.CreatedAt
	company.UpdatedAt = stored.UpdatedAt
	return n, err
}

func (m *MemoryCompanyStore) SelectByID(_ context.Context, id int64) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	company, ok := m.rows[id]
	if !ok {
		return nil, store.ErrCompanyNotFound
	}
	return &company, nil
}

func (m *MemoryCompanyStore) UpdateByID(_ context.Context, company *models.Company) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if company.ID == 0 {
		return 0, store.ErrMissingID
	}

	existing, ok := m.rows[company.ID]
	if !ok {
		return 0, nil
	}
	updated := *company
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.rows[company.ID] = updated
	return 1, nil
}

func (m *MemoryCompanyStore) UpdateByIDSelective(_ context.Context, company *models.Company) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if company.ID == 0 {
		return 0, store.ErrMissingID
	}

	row, ok := m.rows[company.ID]
	if !ok {
		return 0, nil
	}
	mergeString(&row.Name, company.Name)
	mergeString(&row.Code, company.Code)
	mergeString(&row.ContactName, company.ContactName)
	mergeString(&row.ContactPhone, company.ContactPhone)
	mergeString(&row.Email, company.Email)
	mergeString(&row.Address, company.Address)
	mergeString(&row.Remark, company.Remark)
	if company.RegisteredIP != nil {
		row.RegisteredIP = company.RegisteredIP
	}
	if company.Status != nil {
		row.Status = company.Status
	}
	if company.ExpiresAt != nil {
		row.ExpiresAt = company.ExpiresAt
	}
	row.UpdatedAt = time.Now()
	m.rows[company.ID] = row
	return 1, nil
}

func (m *MemoryCompanyStore) SelectParams(_ context.Context, filter *models.Company) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.matching(filter), nil
}

func (m *MemoryCompanyStore) SelectParamsPage(_ context.Context, page *models.Page, filter *models.Company) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	page.Normalize()
	all := m.matching(filter)
	page.Total = int64(len(all))

	start := page.Offset()
	if start >= len(all) {
		return []models.Company{}, nil
	}
	end := start + page.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// Len returns the number of stored companies.
func (m *MemoryCompanyStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MemoryCompanyStore) matching(filter *models.Company) []models.Company {
	out := []models.Company{}
	for _, row := range m.rows {
		if matches(row, filter) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(row models.Company, filter *models.Company) bool {
	if filter == nil {
		return true
	}
	if filter.ID != 0 && row.ID != filter.ID {
		return false
	}
	if filter.Name != nil && !containsFold(row.Name, *filter.Name) {
		return false
	}
	if filter.ContactName != nil && !containsFold(row.ContactName, *filter.ContactName) {
		return false
	}
	if !equalPtr(row.Code, filter.Code) || !equalPtr(row.ContactPhone, filter.ContactPhone) ||
		!equalPtr(row.Email, filter.Email) || !equalPtr(row.Address, filter.Address) ||
		!equalPtr(row.Remark, filter.Remark) {
		return false
	}
	if filter.ExpiresAt != nil && (row.ExpiresAt == nil || !row.ExpiresAt.Equal(*filter.ExpiresAt)) {
		return false
	}
	if !equalPtr(row.Status, filter.Status) || !equalPtr(row.RegisteredIP, filter.RegisteredIP) {
		return false
	}
	return true
}

func containsFold(value *string, sub string) bool {
	return value != nil && strings.Contains(strings.ToLower(*value), strings.ToLower(sub))
}

// equalPtr reports whether an unset filter or an equal value matches.
func equalPtr[T comparable](value, filter *T) bool {
	return filter == nil || (value != nil && *value == *filter)
}

func mergeString(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}
