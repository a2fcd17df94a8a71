package account

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
	"github/chapool/stormint/internal/wallet/address"
	"github/chapool/stormint/internal/wallet/seed"
)

// Deriver derives contiguous ranges of identities from one mnemonic.
type Deriver struct {
	addressService address.Service
	opts           Options
}

// NewDeriver creates a Deriver using addressService for the per-index key derivation.
func NewDeriver(addressService address.Service, opts Options) *Deriver {
	return &Deriver{
		addressService: addressService,
		opts:           opts,
	}
}

type derivation struct {
	identity *Identity
	path     string
	err      error
}

// Derive returns one identity per index of r, ordered by index.
// Indices are derived in parallel and independently of each other; any failure
// fails the whole call.
func (d *Deriver) Derive(mnemonic string, r Range) ([]*Identity, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	masterSeed, err := seed.New(mnemonic, d.opts.Passphrase)
	if err != nil {
		if errors.Is(err, seed.ErrInvalidMnemonic) {
			return nil, ErrInvalidSeed
		}
		return nil, errors.Wrap(err, "failed to create seed")
	}
	defer masterSeed.Wipe()

	seedBytes := masterSeed.Bytes()
	defer func() {
		for i := range seedBytes {
			seedBytes[i] = 0
		}
	}()

	indices := r.Indices()
	if len(indices) == 0 {
		return []*Identity{}, nil
	}

	mapper := iter.Mapper[uint32, derivation]{MaxGoroutines: d.opts.MaxWorkers}
	results := mapper.Map(indices, func(index *uint32) derivation {
		return d.deriveIndex(seedBytes, *index)
	})

	identities := make([]*Identity, len(results))
	for i, res := range results {
		if res.err != nil {
			return nil, &PathError{Index: indices[i], Path: res.path, Err: res.err}
		}
		identities[i] = res.identity
	}

	if err := checkDistinct(identities); err != nil {
		return nil, err
	}

	log.Debug().
		Uint32("start_index", r.Start).
		Uint32("end_index", r.End).
		Int("count", len(identities)).
		Msg("Derived identities")

	return identities, nil
}

func (d *Deriver) deriveIndex(seedBytes []byte, index uint32) derivation {
	path := d.addressService.GetBIP44Path(index)

	key, err := d.addressService.DerivePrivateKey(seedBytes, path)
	if err != nil {
		return derivation{path: path, err: err}
	}

	identity := newIdentity(index, path, key)
	if d.opts.Observer != nil {
		d.opts.Observer.IdentityDerived(identity)
	}

	return derivation{identity: identity, path: path}
}

func checkDistinct(identities []*Identity) error {
	seen := make(map[common.Address]uint32, len(identities))
	for _, identity := range identities {
		if prev, ok := seen[identity.Address()]; ok {
			return errors.Wrapf(ErrDuplicateAddress, "%s at indices %d and %d", identity.Address().Hex(), prev, identity.Index())
		}
		seen[identity.Address()] = identity.Index()
	}
	return nil
}
