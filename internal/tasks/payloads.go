package tasks

import (
	"context"
	"fmt"

	"corpkit/internal/models"
	"corpkit/pkg/jsoncodec"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeTaskImportCompanies = "task:import_companies"
)

// Enqueuer is the part of *asynq.Client the API needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewImportCompaniesTask creates a task whose payload is the companies
// encoded with the registry's default date pattern.
func NewImportCompaniesTask(codecs *jsoncodec.Registry, companies []models.Company) (*asynq.Task, error) {
	payload, err := codecs.Marshal(companies)
	if err != nil {
		return nil, fmt.Errorf("failed to encode companies: %w", err)
	}

	return asynq.NewTask(TypeTaskImportCompanies, []byte(payload), asynq.MaxRetry(5)), nil
}
