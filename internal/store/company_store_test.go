package store_test

import (
	"context"
	"time"

	"corpkit/internal/models"
	"corpkit/internal/store"
	"corpkit/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func insertCompany(ctx context.Context, s store.CompanyStore, company *models.Company) {
	n, err := s.Insert(ctx, company)
	Expect(err).NotTo(HaveOccurred())
	Expect(n).To(Equal(int64(1)))
	Expect(company.ID).NotTo(BeZero())
}

var _ = Describe("GormCompanyStore", func() {
	var (
		ctx context.Context
		s   *store.GormCompanyStore
	)

	BeforeEach(func() {
		requireDB()
		ctx = context.Background()
		s = store.NewCompanyStore(dbConn)
	})

	Describe("Insert and SelectByID", func() {
		It("stores every attribute", func() {
			expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			company := &models.Company{
				Name:         testhelpers.Ptr("Acme"),
				Code:         testhelpers.Ptr("ACME-001"),
				ContactName:  testhelpers.Ptr("Kim"),
				Email:        testhelpers.Ptr("ops@acme.test"),
				RegisteredIP: testhelpers.Ptr(int64(167772161)),
				Status:       testhelpers.Ptr(models.CompanyStatusActive),
				ExpiresAt:    &expires,
			}
			insertCompany(ctx, s, company)

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.Name).To(Equal("Acme"))
			Expect(*got.Code).To(Equal("ACME-001"))
			Expect(*got.RegisteredIP).To(Equal(int64(167772161)))
			Expect(*got.Status).To(Equal(models.CompanyStatusActive))
			Expect(*got.ExpiresAt).To(BeTemporally("==", expires))
			Expect(got.ContactPhone).To(BeNil())
			Expect(got.CreatedAt).NotTo(BeZero())
		})

		It("returns ErrCompanyNotFound for a missing id", func() {
			_, err := s.SelectByID(ctx, 424242)
			Expect(err).To(MatchError(store.ErrCompanyNotFound))
		})
	})

	Describe("InsertSelective", func() {
		It("writes only the attributes that are set", func() {
			company := &models.Company{Name: testhelpers.Ptr("Partial")}
			n, err := s.InsertSelective(ctx, company)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.Name).To(Equal("Partial"))
			Expect(got.Code).To(BeNil())
			Expect(got.Status).To(HaveValue(Equal(models.CompanyStatusActive)))
		})

		It("keeps explicitly set attributes over column defaults", func() {
			company := &models.Company{Name: testhelpers.Ptr("Dormant"), Status: testhelpers.Ptr(models.CompanyStatusDisabled)}
			_, err := s.InsertSelective(ctx, company)
			Expect(err).NotTo(HaveOccurred())

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(HaveValue(Equal(models.CompanyStatusDisabled)))
		})
	})

	Describe("Insert", func() {
		It("writes NULL for unset attributes instead of column defaults", func() {
			company := &models.Company{Name: testhelpers.Ptr("Full")}
			insertCompany(ctx, s, company)

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(BeNil())
		})
	})

	Describe("UpdateByID", func() {
		It("overwrites every column, clearing unset attributes", func() {
			company := &models.Company{Name: testhelpers.Ptr("Before"), Email: testhelpers.Ptr("a@b.test"), Status: testhelpers.Ptr(1)}
			insertCompany(ctx, s, company)

			n, err := s.UpdateByID(ctx, &models.Company{ID: company.ID, Name: testhelpers.Ptr("After")})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.Name).To(Equal("After"))
			Expect(got.Email).To(BeNil())
			Expect(got.Status).To(BeNil())
			Expect(got.CreatedAt).To(BeTemporally("~", company.CreatedAt, time.Second))
		})

		It("reports zero rows for a missing id", func() {
			n, err := s.UpdateByID(ctx, &models.Company{ID: 999, Name: testhelpers.Ptr("Ghost")})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("requires an id", func() {
			_, err := s.UpdateByID(ctx, &models.Company{Name: testhelpers.Ptr("Nobody")})
			Expect(err).To(MatchError(store.ErrMissingID))
		})
	})

	Describe("UpdateByIDSelective", func() {
		It("keeps attributes that are not set", func() {
			company := &models.Company{Name: testhelpers.Ptr("Before"), Email: testhelpers.Ptr("a@b.test"), Status: testhelpers.Ptr(1)}
			insertCompany(ctx, s, company)

			n, err := s.UpdateByIDSelective(ctx, &models.Company{ID: company.ID, Status: testhelpers.Ptr(models.CompanyStatusDisabled)})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			got, err := s.SelectByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.Name).To(Equal("Before"))
			Expect(*got.Email).To(Equal("a@b.test"))
			Expect(*got.Status).To(Equal(models.CompanyStatusDisabled))
		})

		It("reports zero rows for a missing id", func() {
			n, err := s.UpdateByIDSelective(ctx, &models.Company{ID: 999, Name: testhelpers.Ptr("Ghost")})
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("DeleteByID", func() {
		It("removes the record", func() {
			company := &models.Company{Name: testhelpers.Ptr("Doomed")}
			insertCompany(ctx, s, company)

			n, err := s.DeleteByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			count, err := gorm.G[models.Company](dbConn).Count(ctx, "id")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())

			n, err = s.DeleteByID(ctx, company.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("SelectParams", func() {
		BeforeEach(func() {
			insertCompany(ctx, s, &models.Company{Name: testhelpers.Ptr("Alpha Corp"), Code: testhelpers.Ptr("A1"), Status: testhelpers.Ptr(1)})
			insertCompany(ctx, s, &models.Company{Name: testhelpers.Ptr("alpha industries"), Code: testhelpers.Ptr("A2"), Status: testhelpers.Ptr(0)})
			insertCompany(ctx, s, &models.Company{Name: testhelpers.Ptr("Beta Ltd"), Code: testhelpers.Ptr("B1"), Status: testhelpers.Ptr(1)})
			insertCompany(ctx, s, &models.Company{Name: testhelpers.Ptr("100% Gamma"), Code: testhelpers.Ptr("G1"), Status: testhelpers.Ptr(1)})
		})

		It("returns everything for a nil filter", func() {
			companies, err := s.SelectParams(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(4))
		})

		It("matches names by case-insensitive substring", func() {
			companies, err := s.SelectParams(ctx, &models.Company{Name: testhelpers.Ptr("ALPHA")})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(2))
			Expect(*companies[0].Code).To(Equal("A1"))
			Expect(*companies[1].Code).To(Equal("A2"))
		})

		It("combines conditions", func() {
			companies, err := s.SelectParams(ctx, &models.Company{Name: testhelpers.Ptr("alpha"), Status: testhelpers.Ptr(1)})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(1))
			Expect(*companies[0].Name).To(Equal("Alpha Corp"))
		})

		It("matches other attributes by equality", func() {
			companies, err := s.SelectParams(ctx, &models.Company{Code: testhelpers.Ptr("B")})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(BeEmpty())
		})

		It("treats LIKE wildcards in the filter literally", func() {
			companies, err := s.SelectParams(ctx, &models.Company{Name: testhelpers.Ptr("%")})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(1))
			Expect(*companies[0].Code).To(Equal("G1"))
		})
	})

	Describe("SelectParamsPage", func() {
		BeforeEach(func() {
			for _, code := range []string{"C1", "C2", "C3", "C4", "C5"} {
				insertCompany(ctx, s, &models.Company{Name: testhelpers.Ptr("Company " + code), Code: testhelpers.Ptr(code)})
			}
		})

		It("returns one page and the total", func() {
			page := models.NewPage(2, 2)
			companies, err := s.SelectParamsPage(ctx, page, &models.Company{Name: testhelpers.Ptr("company")})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(5)))
			Expect(page.Pages()).To(Equal(int64(3)))
			Expect(companies).To(HaveLen(2))
			Expect(*companies[0].Code).To(Equal("C3"))
			Expect(*companies[1].Code).To(Equal("C4"))
		})

		It("counts only the filtered rows", func() {
			page := models.NewPage(1, 10)
			companies, err := s.SelectParamsPage(ctx, page, &models.Company{Name: testhelpers.Ptr("company"), Code: testhelpers.Ptr("C5")})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
			Expect(companies).To(HaveLen(1))
			Expect(*companies[0].Code).To(Equal("C5"))
		})

		It("returns an empty page when nothing matches", func() {
			page := models.NewPage(1, 10)
			companies, err := s.SelectParamsPage(ctx, page, &models.Company{Code: testhelpers.Ptr("missing")})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeZero())
			Expect(companies).To(BeEmpty())
		})
	})
})
