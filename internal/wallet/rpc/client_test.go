package rpc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/wallet/rpc"
)

type jsonRPCRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newNode serves eth_chainId with chainID, counting requests.
func newNode(t *testing.T, chainID string, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req jsonRPCRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if req.Method != "eth_chainId" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  chainID,
		})
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newBrokenNode(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClientChainID(t *testing.T) {
	var calls atomic.Int32
	node := newNode(t, "0x539", &calls)

	client, err := rpc.NewClient(t.Context(), []string{node.URL})
	require.NoError(t, err)
	defer client.Close()

	chainID, err := client.ChainID(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1337), chainID.Int64())
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientFailsOverWithoutReissuing(t *testing.T) {
	var brokenCalls, healthyCalls atomic.Int32
	broken := newBrokenNode(t, &brokenCalls)
	healthy := newNode(t, "0x1", &healthyCalls)

	client, err := rpc.NewClient(t.Context(), []string{broken.URL, healthy.URL})
	require.NoError(t, err)
	defer client.Close()

	// first request fails and is not retried on the healthy node
	_, err = client.ChainID(t.Context())
	require.Error(t, err)
	assert.Equal(t, int32(1), brokenCalls.Load())
	assert.Equal(t, int32(0), healthyCalls.Load())

	chainID, err := client.ChainID(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID.Int64())
	assert.Equal(t, int32(1), brokenCalls.Load())
	assert.Equal(t, int32(1), healthyCalls.Load())
}

func TestClientKeepsNodeOnJSONRPCError(t *testing.T) {
	var firstCalls, secondCalls atomic.Int32
	first := newNode(t, "0x1", &firstCalls)
	second := newNode(t, "0x2", &secondCalls)

	client, err := rpc.NewClient(t.Context(), []string{first.URL, second.URL})
	require.NoError(t, err)
	defer client.Close()

	// eth_maxPriorityFeePerGas is answered with a JSON-RPC error by the node
	_, err = client.SuggestGasTipCap(t.Context())
	require.Error(t, err)

	chainID, err := client.ChainID(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID.Int64())
	assert.Equal(t, int32(0), secondCalls.Load())
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := rpc.NewClient(t.Context(), nil)
	require.Error(t, err)

	_, err = rpc.NewClient(t.Context(), []string{"unknown://node"})
	require.Error(t, err)
}

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, rpc.ParseRPCURLs(""))
	assert.Equal(t, []string{"http://a:8545"}, rpc.ParseRPCURLs("http://a:8545"))
	assert.Equal(t,
		[]string{"http://a:8545", "https://b.example/rpc"},
		rpc.ParseRPCURLs(" http://a:8545 , ,https://b.example/rpc,"),
	)
}
