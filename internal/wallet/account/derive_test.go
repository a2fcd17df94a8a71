package account_test

import (
	"crypto/ecdsa"
	"fmt"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/address"
)

//nolint:dupword // Standard development mnemonic
const testMnemonic = "test test test test test test test test test test test junk"

func newDeriver(opts account.Options) *account.Deriver {
	return account.NewDeriver(address.NewService(), opts)
}

func addresses(ids []*account.Identity) []common.Address {
	out := make([]common.Address, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Address())
	}
	return out
}

func TestDeriveKnownReference(t *testing.T) {
	ids, err := newDeriver(account.Options{}).Derive(testMnemonic, account.Range{Start: 0, End: 10})
	require.NoError(t, err)
	require.Len(t, ids, 10)

	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", ids[0].Address().Hex())
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", ids[1].Address().Hex())

	for i, id := range ids {
		assert.Equal(t, uint32(i), id.Index())
		assert.Equal(t, fmt.Sprintf("m/44'/60'/0'/0/%d", i), id.Path())
	}
}

func TestDeriveDeterministic(t *testing.T) {
	d := newDeriver(account.Options{MaxWorkers: 3})

	first, err := d.Derive(testMnemonic, account.Range{Start: 0, End: 25})
	require.NoError(t, err)
	second, err := d.Derive(testMnemonic, account.Range{Start: 0, End: 25})
	require.NoError(t, err)

	assert.Equal(t, addresses(first), addresses(second))
}

func TestDeriveSubrangeMatchesFullRange(t *testing.T) {
	d := newDeriver(account.Options{})

	full, err := d.Derive(testMnemonic, account.Range{Start: 0, End: 8})
	require.NoError(t, err)
	sub, err := d.Derive(testMnemonic, account.Range{Start: 5, End: 8})
	require.NoError(t, err)

	assert.Equal(t, addresses(full[5:]), addresses(sub))
}

func TestDeriveUnique(t *testing.T) {
	ids, err := newDeriver(account.Options{}).Derive(testMnemonic, account.Range{Start: 1000, End: 1020})
	require.NoError(t, err)

	seen := make(map[common.Address]struct{}, len(ids))
	for _, id := range ids {
		seen[id.Address()] = struct{}{}
	}
	assert.Len(t, seen, 20)
}

func TestDeriveRangeAlgebra(t *testing.T) {
	d := newDeriver(account.Options{})

	for _, r := range []account.Range{{0, 0}, {5, 5}, {7, 8}, {3, 9}, {100, 104}} {
		ids, err := d.Derive(testMnemonic, r)
		require.NoError(t, err)
		assert.Len(t, ids, int(r.End-r.Start), "range %+v", r)
		assert.NotNil(t, ids)
	}
}

func TestDeriveInvalidRange(t *testing.T) {
	_, err := newDeriver(account.Options{}).Derive(testMnemonic, account.Range{Start: 4, End: 2})
	require.ErrorIs(t, err, account.ErrInvalidRange)
}

func TestDeriveInvalidSeed(t *testing.T) {
	_, err := newDeriver(account.Options{}).Derive("invalid mnemonic phrase", account.Range{Start: 0, End: 1})
	require.ErrorIs(t, err, account.ErrInvalidSeed)

	// validation happens even when nothing would be derived
	_, err = newDeriver(account.Options{}).Derive("", account.Range{})
	require.ErrorIs(t, err, account.ErrInvalidSeed)
}

type countingObserver struct {
	mu      sync.Mutex
	indices map[uint32]common.Address
}

func (o *countingObserver) IdentityDerived(id *account.Identity) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.indices[id.Index()] = id.Address()
}

func TestDeriveNotifiesObserver(t *testing.T) {
	obs := &countingObserver{indices: map[uint32]common.Address{}}

	ids, err := newDeriver(account.Options{Observer: obs}).Derive(testMnemonic, account.Range{Start: 2, End: 12})
	require.NoError(t, err)

	require.Len(t, obs.indices, 10)
	for _, id := range ids {
		assert.Equal(t, id.Address(), obs.indices[id.Index()])
	}
}

// stubAddressService fails or repeats keys on demand.
type stubAddressService struct {
	address.Service
	failAt   map[uint32]bool
	sameKey  *ecdsa.PrivateKey
	pathByIx map[string]uint32
	mu       sync.Mutex
}

func newStub() *stubAddressService {
	return &stubAddressService{
		Service:  address.NewService(),
		failAt:   map[uint32]bool{},
		pathByIx: map[string]uint32{},
	}
}

func (s *stubAddressService) GetBIP44Path(index uint32) string {
	path := s.Service.GetBIP44Path(index)
	s.mu.Lock()
	s.pathByIx[path] = index
	s.mu.Unlock()
	return path
}

func (s *stubAddressService) DerivePrivateKey(seed []byte, path string) (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	index := s.pathByIx[path]
	s.mu.Unlock()

	if s.failAt[index] {
		return nil, errors.New("boom")
	}
	if s.sameKey != nil {
		return s.sameKey, nil
	}
	return s.Service.DerivePrivateKey(seed, path)
}

func TestDerivePathFailureFailsWholeCall(t *testing.T) {
	stub := newStub()
	stub.failAt[6] = true
	stub.failAt[4] = true

	ids, err := account.NewDeriver(stub, account.Options{}).Derive(testMnemonic, account.Range{Start: 0, End: 10})
	require.Error(t, err)
	assert.Nil(t, ids)

	var pathErr *account.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, uint32(4), pathErr.Index)
	assert.Equal(t, "m/44'/60'/0'/0/4", pathErr.Path)
}

func TestDeriveDuplicateAddressIsHardError(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	stub := newStub()
	stub.sameKey = key

	_, err = account.NewDeriver(stub, account.Options{}).Derive(testMnemonic, account.Range{Start: 0, End: 3})
	require.ErrorIs(t, err, account.ErrDuplicateAddress)
}

func TestFromPrivateKeyHex(t *testing.T) {
	// first hardhat development account
	id, err := account.FromPrivateKeyHex("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", id.Address().Hex())
	assert.Empty(t, id.Path())

	_, err = account.FromPrivateKeyHex("not-a-key")
	require.Error(t, err)
}
