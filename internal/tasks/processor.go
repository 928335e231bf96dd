package tasks

import (
	"context"
	"fmt"

	"corpkit/internal/models"
	"corpkit/internal/store"
	"corpkit/pkg/jsoncodec"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	store  store.CompanyStore
	codecs *jsoncodec.Registry
	logger *zap.Logger
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(companyStore store.CompanyStore, codecs *jsoncodec.Registry, logger *zap.Logger) *TaskProcessor {
	return &TaskProcessor{
		store:  companyStore,
		codecs: codecs,
		logger: logger,
	}
}

// HandleImportCompaniesTask upserts a batch of companies. A company with an
// id that exists is updated selectively; anything else is inserted
// selectively as a new record.
func (p *TaskProcessor) HandleImportCompaniesTask(ctx context.Context, t *asynq.Task) error {
	companies, err := jsoncodec.Unmarshal[[]models.Company](p.codecs, string(t.Payload()))
	if err != nil {
		p.logger.Error("failed to decode import payload", zap.Error(err))
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	p.logger.Info("importing companies", zap.Int("count", len(companies)))

	var inserted, updated int
	for i := range companies {
		company := &companies[i]

		if company.ID != 0 {
			n, err := p.store.UpdateByIDSelective(ctx, company)
			if err != nil {
				return err
			}
			if n > 0 {
				updated++
				continue
			}
			p.logger.Debug("company not found, inserting", zap.Int64("id", company.ID))
			company.ID = 0
		}

		if _, err := p.store.InsertSelective(ctx, company); err != nil {
			return err
		}
		inserted++
	}

	p.logger.Info("companies imported", zap.Int("inserted", inserted), zap.Int("updated", updated))

	return nil
}
