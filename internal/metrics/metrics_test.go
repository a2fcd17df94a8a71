package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/metrics"
	"github/chapool/stormint/internal/test"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/address"
	"github/chapool/stormint/internal/wallet/executor"
	"github/chapool/stormint/internal/wallet/mint"
)

func TestObserversUpdateCollectors(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	deriver := account.NewDeriver(address.NewService(), account.Options{Observer: m})
	_, err = deriver.Derive(test.DevMnemonic, account.Range{Start: 0, End: 4})
	require.NoError(t, err)

	m.OutcomeRecorded(mint.Outcome{Elapsed: time.Second})
	m.OutcomeRecorded(mint.Outcome{Elapsed: 2 * time.Second, Err: &executor.SubmissionError{Kind: executor.ErrReverted}})
	m.OutcomeRecorded(mint.Outcome{Elapsed: time.Second, Err: &executor.SubmissionError{Kind: executor.ErrReverted}})

	count, err := testutil.GatherAndCount(m.Registry,
		"stormint_identities_derived_total",
		"stormint_submissions_total",
		"stormint_submission_duration_seconds",
	)
	require.NoError(t, err)
	// one derived counter, two submission label sets, two histogram label sets
	assert.Equal(t, 5, count)
}

func TestServerServesMetrics(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)
	m.OutcomeRecorded(mint.Outcome{Elapsed: time.Second})

	srv := metrics.NewServer(m, "127.0.0.1:0")

	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stormint_submissions_total{kind="",result="success"} 1`)
}
