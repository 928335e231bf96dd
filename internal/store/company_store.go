package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"corpkit/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrMissingID       = errors.New("company id is required")
)

// CompanyStore reads and writes company records. Write methods return the
// number of affected rows, which is zero when the id does not exist.
type CompanyStore interface {
	DeleteByID(ctx context.Context, id int64) (int64, error)
	// Insert writes every column, storing NULL for unset attributes.
	Insert(ctx context.Context, company *models.Company) (int64, error)
	// InsertSelective writes only the attributes that are set, leaving the
	// rest to column defaults.
	InsertSelective(ctx context.Context, company *models.Company) (int64, error)
	SelectByID(ctx context.Context, id int64) (*models.Company, error)
	// UpdateByID overwrites every column, including clearing unset attributes.
	UpdateByID(ctx context.Context, company *models.Company) (int64, error)
	// UpdateByIDSelective overwrites only the attributes that are set.
	UpdateByIDSelective(ctx context.Context, company *models.Company) (int64, error)
	SelectParams(ctx context.Context, filter *models.Company) ([]models.Company, error)
	// SelectParamsPage is SelectParams limited to one page; it sets page.Total.
	SelectParamsPage(ctx context.Context, page *models.Page, filter *models.Company) ([]models.Company, error)
}

type GormCompanyStore struct {
	db *gorm.DB
}

var _ CompanyStore = (*GormCompanyStore)(nil)

func NewCompanyStore(db *gorm.DB) *GormCompanyStore {
	return &GormCompanyStore{db: db}
}

func (s *GormCompanyStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&models.Company{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete company %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormCompanyStore) Insert(ctx context.Context, company *models.Company) (int64, error) {
	result := gorm.WithResult()
	if err := gorm.G[models.Company](s.db, result).Create(ctx, company); err != nil {
		return 0, fmt.Errorf("failed to insert company: %w", err)
	}
	return result.RowsAffected, nil
}

func (s *GormCompanyStore) InsertSelective(ctx context.Context, company *models.Company) (int64, error) {
	tx := s.db.WithContext(ctx)
	if unset := unsetFields(company); len(unset) > 0 {
		tx = tx.Omit(unset...)
	}

	result := tx.Create(company)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert company: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormCompanyStore) SelectByID(ctx context.Context, id int64) (*models.Company, error) {
	company, err := gorm.G[models.Company](s.db).Where("id = ?", id).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	return &company, nil
}

func (s *GormCompanyStore) UpdateByID(ctx context.Context, company *models.Company) (int64, error) {
	if company.ID == 0 {
		return 0, ErrMissingID
	}

	result := s.db.WithContext(ctx).Model(company).Select("*").Omit("ID", "CreatedAt").Updates(company)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update company %d: %w", company.ID, result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormCompanyStore) UpdateByIDSelective(ctx context.Context, company *models.Company) (int64, error) {
	if company.ID == 0 {
		return 0, ErrMissingID
	}

	// Updates with a struct skips nil pointers and zero values.
	result := s.db.WithContext(ctx).Model(company).Omit("CreatedAt").Updates(company)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update company %d: %w", company.ID, result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormCompanyStore) SelectParams(ctx context.Context, filter *models.Company) ([]models.Company, error) {
	companies, err := s.filtered(filter).Order("id").Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return companies, nil
}

func (s *GormCompanyStore) SelectParamsPage(ctx context.Context, page *models.Page, filter *models.Company) ([]models.Company, error) {
	page.Normalize()

	total, err := s.filtered(filter).Count(ctx, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	page.Total = total
	if total == 0 {
		return []models.Company{}, nil
	}

	companies, err := s.filtered(filter).
		Order("id").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return companies, nil
}

// filtered builds a fresh query matching filter. Name and ContactName match
// case-insensitively by substring, every other set attribute by equality.
func (s *GormCompanyStore) filtered(filter *models.Company) gorm.ChainInterface[models.Company] {
	var q gorm.ChainInterface[models.Company] = gorm.G[models.Company](s.db)
	if filter == nil {
		return q
	}

	if filter.ID != 0 {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.Name != nil {
		q = q.Where("name ILIKE ?", containsPattern(*filter.Name))
	}
	if filter.ContactName != nil {
		q = q.Where("contact_name ILIKE ?", containsPattern(*filter.ContactName))
	}
	if filter.Code != nil {
		q = q.Where("code = ?", *filter.Code)
	}
	if filter.ContactPhone != nil {
		q = q.Where("contact_phone = ?", *filter.ContactPhone)
	}
	if filter.Email != nil {
		q = q.Where("email = ?", *filter.Email)
	}
	if filter.Address != nil {
		q = q.Where("address = ?", *filter.Address)
	}
	if filter.RegisteredIP != nil {
		q = q.Where("registered_ip = ?", *filter.RegisteredIP)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ExpiresAt != nil {
		q = q.Where("expires_at = ?", *filter.ExpiresAt)
	}
	if filter.Remark != nil {
		q = q.Where("remark = ?", *filter.Remark)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// unsetFields lists the nil pointer fields of v, a pointer to a struct.
func unsetFields(v any) []string {
	rv := reflect.Indirect(reflect.ValueOf(v))
	rt := rv.Type()

	var names []string
	for i := 0; i < rt.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.Pointer && f.IsNil() {
			names = append(names, rt.Field(i).Name)
		}
	}
	return names
}
