package distributor

import (
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github/chapool/stormint/internal/wallet/executor"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// Batch is the single call argument built from a transfer list plus the value
// the call must carry.
type Batch struct {
	// Argument is a slice of the method's tuple type, ready for abi.Pack.
	Argument any
	// TotalValue is the sum of all amounts in wei.
	TotalValue *big.Int
	Len        int
}

// Args returns the call arguments.
func (b *Batch) Args() []any {
	return []any{b.Argument}
}

type tupleLayout struct {
	receiver int
	amount   int
}

// NewBatch builds a batch for method, whose only input must be an array of
// (address, uint256) tuples. Component names and order are taken from the ABI.
// Nil or negative amounts, a total above 2^256-1 and ABI shapes that do not fit
// are reported as executor.ErrArgumentMismatch.
func NewBatch(method abi.Method, transfers []Transfer) (*Batch, error) {
	layout, err := layoutOf(method)
	if err != nil {
		return nil, err
	}

	listType := method.Inputs[0].Type.GetType()
	list := reflect.MakeSlice(listType, len(transfers), len(transfers))
	total := new(uint256.Int)

	for i, transfer := range transfers {
		if transfer.Amount == nil || transfer.Amount.Sign() < 0 {
			return nil, errors.Wrapf(executor.ErrArgumentMismatch, "transfer %d: amount must be a non-negative integer", i)
		}

		amount, overflow := uint256.FromBig(transfer.Amount)
		if overflow {
			return nil, errors.Wrapf(executor.ErrArgumentMismatch, "transfer %d: amount exceeds uint256", i)
		}

		if _, overflow := total.AddOverflow(total, amount); overflow {
			return nil, errors.Wrapf(executor.ErrArgumentMismatch, "total value overflows uint256 at transfer %d", i)
		}

		elem := list.Index(i)
		elem.Field(layout.receiver).Set(reflect.ValueOf(transfer.Receiver))
		elem.Field(layout.amount).Set(reflect.ValueOf(new(big.Int).Set(transfer.Amount)))
	}

	return &Batch{
		Argument:   list.Interface(),
		TotalValue: total.ToBig(),
		Len:        len(transfers),
	}, nil
}

func layoutOf(method abi.Method) (tupleLayout, error) {
	layout := tupleLayout{receiver: -1, amount: -1}

	if len(method.Inputs) != 1 {
		return layout, errors.Wrapf(executor.ErrArgumentMismatch,
			"%s must take exactly one argument, takes %d", method.Name, len(method.Inputs))
	}

	listType := method.Inputs[0].Type
	if listType.T != abi.SliceTy || listType.Elem == nil || listType.Elem.T != abi.TupleTy {
		return layout, errors.Wrapf(executor.ErrArgumentMismatch,
			"%s must take a tuple array, takes %s", method.Name, listType.String())
	}

	components := listType.Elem.TupleElems
	if len(components) != 2 {
		return layout, errors.Wrapf(executor.ErrArgumentMismatch,
			"%s tuple must have 2 components, has %d", method.Name, len(components))
	}

	for i, component := range components {
		switch {
		case component.T == abi.AddressTy && layout.receiver < 0:
			layout.receiver = i
		case component.T == abi.UintTy && component.GetType() == bigIntType && layout.amount < 0:
			layout.amount = i
		}
	}

	if layout.receiver < 0 || layout.amount < 0 {
		return layout, errors.Wrapf(executor.ErrArgumentMismatch,
			"%s tuple must be (address, uint256), is %s", method.Name, listType.Elem.String())
	}

	return layout, nil
}
