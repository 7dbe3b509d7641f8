package client

import (
	"context"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
)

// Client is the backend API contract used by the services.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (models.Credentials, error)
	Register(ctx context.Context, email, password string, role models.Role) error

	ListApproved(ctx context.Context, token string) ([]models.Project, error)
	ListMine(ctx context.Context, token string) ([]models.Project, error)
	ListMentored(ctx context.Context, token string) ([]models.Project, error)
	ListPending(ctx context.Context, token string) ([]models.Project, error)

	CreateProject(ctx context.Context, token string, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, token string, id int64, in models.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, token string, id int64) error
	Decide(ctx context.Context, token string, id int64, action models.Action) (*models.Project, error)

	CheckOriginality(ctx context.Context, token, title, synopsis string) (*models.OriginalityReport, error)
	Weather(ctx context.Context) (*models.Weather, error)
}
