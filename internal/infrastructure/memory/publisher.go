package memory

import (
	"context"
	"log"

	"github.com/solarsmart/account-service/internal/application/account"
)

// NoopPublisher stands in for the broker when RABBIT_URL is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt account.UserRegisteredEvent) error {
	log.Printf("[noop-pub] user registered: user_id=%d email=%s", evt.UserID, evt.Email)
	return nil
}

func (p *NoopPublisher) PublishUserDeleted(ctx context.Context, evt account.UserDeletedEvent) error {
	log.Printf("[noop-pub] user deleted: user_id=%d", evt.UserID)
	return nil
}
