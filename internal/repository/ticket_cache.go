package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const ticketCacheTTL = 5 * time.Minute

// TicketCache stores ticket snapshots in Redis for read-heavy lookups.
// Entries are refreshed on save, so a hit is at most one write behind.
type TicketCache struct {
	client *redis.Client
}

// NewTicketCache constructs the cache.
func NewTicketCache(client *redis.Client) *TicketCache {
	return &TicketCache{client: client}
}

func ticketCacheKey(id string) string {
	return "ticket:" + id
}

// Get returns the cached ticket or nil on a miss.
func (c *TicketCache) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, ticketCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var snap domain.TicketSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return domain.RestoreTicket(snap), nil
}

// Set stores the ticket snapshot.
func (c *TicketCache) Set(ctx context.Context, ticket *domain.Ticket) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(ticket.Snapshot())
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ticketCacheKey(ticket.ID()), raw, ticketCacheTTL).Err()
}

// Invalidate drops the cached entry.
func (c *TicketCache) Invalidate(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, ticketCacheKey(id)).Err()
}
