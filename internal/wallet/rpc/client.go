package rpc

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Client wraps one ethclient per endpoint URL and fails over between them.
// A request that fails on transport level marks its node as failed so that the
// next request goes to the following URL. Requests are never re-issued: a
// broadcast must not be sent twice.
type Client struct {
	urls    []string
	clients []*ethclient.Client
	mu      sync.RWMutex
	current int
}

// NewClient dials every URL. Nodes that cannot be dialed are retried on use.
func NewClient(ctx context.Context, urls []string) (*Client, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	clients := make([]*ethclient.Client, 0, len(urls))
	for _, url := range urls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			log.Warn().
				Str("url", url).
				Err(err).
				Msg("Failed to connect to RPC node, will retry on use")
			clients = append(clients, nil)
			continue
		}
		clients = append(clients, client)
	}

	if allClientsNil(clients) {
		return nil, errors.New("failed to connect to any RPC node")
	}

	return &Client{
		urls:    urls,
		clients: clients,
	}, nil
}

func allClientsNil(clients []*ethclient.Client) bool {
	for _, client := range clients {
		if client != nil {
			return false
		}
	}
	return true
}

// URLs returns the endpoint URLs in failover order.
func (c *Client) URLs() []string {
	return append([]string(nil), c.urls...)
}

// Close closes all node connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, client := range c.clients {
		if client != nil {
			client.Close()
			c.clients[i] = nil
		}
	}
}

// ChainID returns the chain id reported by the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var chainID *big.Int
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		chainID, err = client.ChainID(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}
	return chainID, nil
}

// PendingNonceAt returns the pending nonce for the given address.
func (c *Client) PendingNonceAt(ctx context.Context, address common.Address) (uint64, error) {
	var nonce uint64
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		nonce, err = client.PendingNonceAt(ctx, address)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}
	return nonce, nil
}

// SuggestGasTipCap returns the node's priority fee suggestion (EIP-1559).
func (c *Client) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	var tipCap *big.Int
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		tipCap, err = client.SuggestGasTipCap(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}
	return tipCap, nil
}

// HeaderByNumber returns a block header, the latest one if number is nil.
func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		header, err = client.HeaderByNumber(ctx, number)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get block header")
	}
	return header, nil
}

// EstimateGas asks the node for the gas needed by msg.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var gas uint64
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		gas, err = client.EstimateGas(ctx, msg)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}
	return gas, nil
}

// SendTransaction broadcasts a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	err := c.do(ctx, func(client *ethclient.Client) error {
		return client.SendTransaction(ctx, tx)
	})
	if err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}
	return nil
}

// TransactionReceipt returns the receipt of a mined transaction or ethereum.NotFound.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		receipt, err = client.TransactionReceipt(ctx, txHash)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}
	return receipt, nil
}

// CallContract executes a read-only call, at the latest block if blockNumber is nil.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var out []byte
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		out, err = client.CallContract(ctx, msg, blockNumber)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call contract")
	}
	return out, nil
}

// BalanceAt returns the balance of an address at the latest known block.
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	var balance *big.Int
	err := c.do(ctx, func(client *ethclient.Client) error {
		var err error
		balance, err = client.BalanceAt(ctx, address, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

// do runs fn once against the current node and rotates to the next node when
// the failure was on transport level.
func (c *Client) do(ctx context.Context, fn func(client *ethclient.Client) error) error {
	idx, client, err := c.getClient(ctx)
	if err != nil {
		return err
	}

	err = fn(client)
	if err != nil && isTransportError(err) {
		c.markFailed(idx, err)
	}
	return err
}

// getClient returns the first usable client starting at the current index,
// redialing nodes whose earlier dial failed.
func (c *Client) getClient(ctx context.Context) (int, *ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < len(c.clients); i++ {
		idx := (c.current + i) % len(c.clients)
		if client := c.clients[idx]; client != nil {
			c.current = idx
			return idx, client, nil
		}

		client, err := ethclient.DialContext(ctx, c.urls[idx])
		if err != nil {
			log.Warn().
				Str("url", c.urls[idx]).
				Err(err).
				Msg("Failed to reconnect to RPC node")
			continue
		}
		c.clients[idx] = client
		c.current = idx
		return idx, client, nil
	}

	return 0, nil, errors.New("all RPC clients are unavailable")
}

func (c *Client) markFailed(idx int, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.clients) < 2 || c.current != idx {
		return
	}

	c.current = (idx + 1) % len(c.clients)
	log.Warn().
		Str("url", c.urls[idx]).
		Str("next_url", c.urls[c.current]).
		Err(cause).
		Msg("RPC node failed, switching to next node")
}

// isTransportError reports whether err means the node could not serve the
// request at all. JSON-RPC error responses and missing receipts come from a
// healthy node.
func isTransportError(err error) bool {
	if errors.Is(err, ethereum.NotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rpcErr gethrpc.Error
	return !errors.As(err, &rpcErr)
}
