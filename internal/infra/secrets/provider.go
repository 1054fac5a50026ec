// internal/infra/secrets/provider.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var (
	ErrNotConfigured = errors.New("secrets: provider not configured")
	ErrNotFound      = errors.New("secrets: secret not found")
)

// Provider reads secret payloads from Secret Manager. Used for the
// store API token so it never has to live in plain environment config.
type Provider struct {
	Client    *secretmanager.Client
	ProjectID string
}

func NewProvider(ctx context.Context, projectID string) (*Provider, error) {
	pid := strings.TrimSpace(projectID)
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrNotConfigured)
	}

	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Provider{Client: c, ProjectID: pid}, nil
}

// Get resolves the latest version of the named secret.
func (p *Provider) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrNotConfigured
	}

	id := strings.TrimSpace(secretID)
	if id == "" {
		return "", fmt.Errorf("%w: secretID is empty", ErrNotConfigured)
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, id)

	res, err := p.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrNotFound
	}

	s := strings.TrimSpace(string(res.Payload.Data))
	if s == "" {
		return "", ErrNotFound
	}
	return s, nil
}

func (p *Provider) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
