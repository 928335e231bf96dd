package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"corpkit/internal/models"
	"corpkit/internal/store"
	"corpkit/internal/tasks"
	"corpkit/pkg/ipaddr"
	"corpkit/pkg/jsoncodec"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyController struct {
	Store          store.CompanyStore
	Codecs         *jsoncodec.Registry
	Enqueuer       tasks.Enqueuer
	Logger         *zap.Logger
	DefaultPattern string
}

// CompanyResponse is a company with its registered IP also in dotted form.
type CompanyResponse struct {
	models.Company
	RegisteredIPText *string `json:"registeredIpText"`
}

// CompanyRequest accepts the registered IP either encoded or dotted.
type CompanyRequest struct {
	models.Company
	RegisteredIPText *string `json:"registeredIpText"`
}

type PageResponse struct {
	PageNo   int   `json:"pageNo"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	Pages    int64 `json:"pages"`
}

func newCompanyResponse(company models.Company) CompanyResponse {
	resp := CompanyResponse{Company: company}
	if dotted, ok := ipaddr.DecodeNullable(company.RegisteredIP); ok {
		resp.RegisteredIPText = &dotted
	}
	return resp
}

// toCompany resolves the dotted IP, which wins over the encoded one.
func (r CompanyRequest) toCompany() (models.Company, error) {
	company := r.Company
	if r.RegisteredIPText != nil {
		n, err := ipaddr.Parse(*r.RegisteredIPText)
		if err != nil {
			return company, err
		}
		encoded := int64(n)
		company.RegisteredIP = &encoded
	}
	return company, nil
}

// ListCompanies returns one page of companies matching the query filters
func (cc *CompanyController) ListCompanies(c *gin.Context) {
	codec, ok := codecFor(c, cc.Codecs, cc.DefaultPattern)
	if !ok {
		return
	}

	filter, ok := companyFilter(c)
	if !ok {
		return
	}

	page := models.NewPage(getIntWithDefault(c, "page", 1), getIntWithDefault(c, "size", models.DefaultPageSize))
	companies, err := cc.Store.SelectParamsPage(c.Request.Context(), page, filter)
	if err != nil {
		cc.Logger.Error("failed to list companies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	items := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, newCompanyResponse(company))
	}

	render(c, cc.Logger, codec, http.StatusOK, gin.H{
		"companies": items,
		"page": PageResponse{
			PageNo:   page.PageNo,
			PageSize: page.PageSize,
			Total:    page.Total,
			Pages:    page.Pages(),
		},
	})
}

// GetCompany returns a single company
func (cc *CompanyController) GetCompany(c *gin.Context) {
	codec, ok := codecFor(c, cc.Codecs, cc.DefaultPattern)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	cc.renderCompany(c, codec, http.StatusOK, id)
}

// CreateCompany inserts a company. With selective=true only the supplied
// attributes are written.
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	codec, ok := codecFor(c, cc.Codecs, cc.DefaultPattern)
	if !ok {
		return
	}
	company, ok := cc.bindCompany(c, codec)
	if !ok {
		return
	}
	company.ID = 0

	insert := cc.Store.Insert
	if c.Query("selective") == "true" {
		insert = cc.Store.InsertSelective
	}
	if _, err := insert(c.Request.Context(), &company); err != nil {
		cc.Logger.Error("failed to create company", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	cc.renderCompany(c, codec, http.StatusCreated, company.ID)
}

// ReplaceCompany overwrites every attribute of a company
func (cc *CompanyController) ReplaceCompany(c *gin.Context) {
	cc.updateCompany(c, false)
}

// PatchCompany overwrites only the supplied attributes of a company
func (cc *CompanyController) PatchCompany(c *gin.Context) {
	cc.updateCompany(c, true)
}

// DeleteCompany removes a company
func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n, err := cc.Store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		cc.Logger.Error("failed to delete company", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportCompanies queues a batch of companies for the worker
func (cc *CompanyController) ImportCompanies(c *gin.Context) {
	codec, ok := codecFor(c, cc.Codecs, cc.DefaultPattern)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read body"})
		return
	}

	requests, err := jsoncodec.Decode[[]CompanyRequest](codec, string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid companies payload"})
		return
	}

	companies := make([]models.Company, 0, len(requests))
	for i, r := range requests {
		company, err := r.toCompany()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registered IP at index " + strconv.Itoa(i)})
			return
		}
		companies = append(companies, company)
	}

	task, err := tasks.NewImportCompaniesTask(cc.Codecs, companies)
	if err != nil {
		cc.Logger.Error("failed to build import task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	info, err := cc.Enqueuer.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		cc.Logger.Error("failed to enqueue import task", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not queue import"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"taskId": info.ID, "count": len(companies)})
}

func (cc *CompanyController) updateCompany(c *gin.Context, selective bool) {
	codec, ok := codecFor(c, cc.Codecs, cc.DefaultPattern)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	company, ok := cc.bindCompany(c, codec)
	if !ok {
		return
	}
	company.ID = id

	update := cc.Store.UpdateByID
	if selective {
		update = cc.Store.UpdateByIDSelective
	}
	n, err := update(c.Request.Context(), &company)
	if err != nil {
		cc.Logger.Error("failed to update company", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	cc.renderCompany(c, codec, http.StatusOK, id)
}

func (cc *CompanyController) bindCompany(c *gin.Context, codec *jsoncodec.Codec) (models.Company, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read body"})
		return models.Company{}, false
	}

	var req CompanyRequest
	if err := codec.Unmarshal(string(body), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company payload"})
		return models.Company{}, false
	}

	company, err := req.toCompany()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registered IP"})
		return models.Company{}, false
	}
	return company, true
}

func (cc *CompanyController) renderCompany(c *gin.Context, codec *jsoncodec.Codec, status int, id int64) {
	company, err := cc.Store.SelectByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		cc.Logger.Error("failed to get company", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	render(c, cc.Logger, codec, status, newCompanyResponse(*company))
}

// companyFilter builds a search filter from the query string. An ip filter
// may be dotted or already encoded.
func companyFilter(c *gin.Context) (*models.Company, bool) {
	filter := &models.Company{}
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("code"); v != "" {
		filter.Code = &v
	}
	if v := c.Query("contactName"); v != "" {
		filter.ContactName = &v
	}
	if v := c.Query("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return nil, false
		}
		filter.Status = &status
	}
	if v := c.Query("ip"); v != "" {
		dotted, _ := ipaddr.Normalize(v)
		n, err := ipaddr.Parse(dotted)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ip"})
			return nil, false
		}
		encoded := int64(n)
		filter.RegisteredIP = &encoded
	}
	return filter, true
}
