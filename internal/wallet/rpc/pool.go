package rpc

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const defaultPoolSize = 16

// Pool hands out one shared Client per endpoint string. Concurrent first uses
// of an endpoint share a single dial; least recently used clients are closed
// once the pool is full.
type Pool struct {
	clients *lru.Cache[string, *Client]
	group   singleflight.Group
}

// NewPool creates a pool holding at most size clients, 16 if size <= 0.
func NewPool(size int) (*Pool, error) {
	if size <= 0 {
		size = defaultPoolSize
	}

	clients, err := lru.NewWithEvict(size, func(endpoint string, client *Client) {
		log.Debug().Str("endpoint", endpoint).Msg("Closing evicted RPC client")
		client.Close()
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create RPC client cache")
	}

	return &Pool{clients: clients}, nil
}

// Get returns the client for endpoint, dialing it on first use.
// endpoint may list several comma separated URLs for failover.
func (p *Pool) Get(ctx context.Context, endpoint string) (*Client, error) {
	key := strings.TrimSpace(endpoint)
	if client, ok := p.clients.Get(key); ok {
		return client, nil
	}

	urls := ParseRPCURLs(key)
	if len(urls) == 0 {
		return nil, errors.New("RPC endpoint is empty")
	}

	res, err, _ := p.group.Do(key, func() (any, error) {
		if client, ok := p.clients.Get(key); ok {
			return client, nil
		}

		client, err := NewClient(ctx, urls)
		if err != nil {
			return nil, err
		}

		p.clients.Add(key, client)
		log.Debug().Strs("urls", urls).Msg("Dialed RPC endpoint")
		return client, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", key)
	}

	client, ok := res.(*Client)
	if !ok {
		return nil, errors.New("unexpected RPC client type")
	}
	return client, nil
}

// Len returns the number of cached clients.
func (p *Pool) Len() int {
	return p.clients.Len()
}

// Close closes every cached client.
func (p *Pool) Close() {
	p.clients.Purge()
}
