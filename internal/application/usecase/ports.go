// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IDGenerator issues local identifiers for guest-side records.
type IDGenerator func() string

func uuidGenerator() string { return uuid.NewString() }

// Mailer sends transactional mail. Failures are reported but checkout
// never fails because of mail.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}
