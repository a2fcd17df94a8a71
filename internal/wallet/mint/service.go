package mint

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github/chapool/stormint/internal/util"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/executor"
)

type service struct {
	submitter executor.Service
	opts      Options
}

// NewService creates a mint executor submitting through submitter.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(submitter executor.Service, opts Options) Service {
	return &service{
		submitter: submitter,
		opts:      opts,
	}
}

func (s *service) RunBatch(ctx context.Context, identities []*account.Identity, req Request) ([]Outcome, error) {
	req, err := normalize(req, identities)
	if err != nil {
		return nil, err
	}

	if len(identities) == 0 {
		return []Outcome{}, nil
	}

	workers := s.opts.MaxConcurrency
	if workers <= 0 {
		workers = len(identities)
	}

	log := util.LogFromContext(ctx)
	log.Info().
		Int("identities", len(identities)).
		Int("workers", workers).
		Str("contract", req.Contract.Address.Hex()).
		Str("function", req.Function).
		Msg("Starting mint batch")

	started := time.Now()
	mapper := iter.Mapper[*account.Identity, Outcome]{MaxGoroutines: workers}
	outcomes := mapper.Map(identities, func(identity **account.Identity) Outcome {
		return s.submit(ctx, *identity, req)
	})

	summary := Summarize(outcomes)
	log.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("Mint batch finished")

	return outcomes, nil
}

func (s *service) submit(ctx context.Context, identity *account.Identity, req Request) Outcome {
	started := time.Now()
	txHash, err := s.submitter.Submit(ctx, identity, req.Contract, req.Function, req.Args, req.Value)

	outcome := Outcome{
		Actor:   identity.Address(),
		TxHash:  txHash,
		Err:     err,
		Elapsed: time.Since(started),
	}

	log := util.LogFromContext(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Str("address", outcome.Actor.Hex()).
			Uint32("index", identity.Index()).
			Msg("Mint submission failed")
	} else {
		log.Debug().
			Str("address", outcome.Actor.Hex()).
			Str("tx_hash", txHash.Hex()).
			Dur("elapsed", outcome.Elapsed).
			Msg("Mint submission confirmed")
	}

	if s.opts.Observer != nil {
		s.opts.Observer.OutcomeRecorded(outcome)
	}

	return outcome
}

// normalize applies defaults and rejects requests that cannot succeed for any identity.
func normalize(req Request, identities []*account.Identity) (Request, error) {
	if req.Function == "" {
		req.Function = DefaultFunction
	}
	if req.Value == nil {
		req.Value = big.NewInt(0)
	}

	if req.Contract.Endpoint == "" {
		return req, &SetupError{Reason: "endpoint is required"}
	}
	if req.Contract.ABI == nil {
		return req, &SetupError{Reason: "contract ABI is required"}
	}
	if req.Value.Sign() < 0 {
		return req, &SetupError{Reason: "value must not be negative"}
	}
	if _, err := executor.Encode(req.Contract.ABI, req.Function, req.Args); err != nil {
		return req, &SetupError{Reason: "call cannot be encoded", Err: err}
	}

	for i, identity := range identities {
		if identity == nil {
			return req, &SetupError{Reason: "identity list contains nil at position " + strconv.Itoa(i)}
		}
	}

	return req, nil
}
