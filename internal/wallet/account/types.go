package account

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidSeed is returned when the phrase fails BIP39 word list or checksum validation.
	ErrInvalidSeed = errors.New("invalid seed phrase")
	// ErrInvalidRange is returned when a range starts after it ends.
	ErrInvalidRange = errors.New("invalid derivation range")
	// ErrDuplicateAddress signals two indices of one derivation produced the same address.
	ErrDuplicateAddress = errors.New("duplicate derived address")
)

// Range is the half-open index range [Start, End) of a derivation.
type Range struct {
	Start uint32
	End   uint32
}

// Validate checks Start <= End.
func (r Range) Validate() error {
	if r.Start > r.End {
		return errors.Wrapf(ErrInvalidRange, "start %d is after end %d", r.Start, r.End)
	}
	return nil
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.Start >= r.End {
		return 0
	}
	return int(r.End - r.Start)
}

// Indices lists every index of the range in increasing order.
func (r Range) Indices() []uint32 {
	indices := make([]uint32, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		indices = append(indices, i)
	}
	return indices
}

// PathError reports a derivation failure at one index. It fails the whole derivation.
type PathError struct {
	Index uint32
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("failed to derive identity at index %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Observer is notified after each identity is derived. Implementations must be
// safe for concurrent use; calls arrive in completion order, not index order.
type Observer interface {
	IdentityDerived(identity *Identity)
}

// Options tunes a Deriver.
type Options struct {
	// MaxWorkers bounds parallel derivations; 0 uses GOMAXPROCS.
	MaxWorkers int
	// Passphrase is the optional BIP39 passphrase ("25th word").
	Passphrase string
	// Observer receives progress notifications, may be nil.
	Observer Observer
}
