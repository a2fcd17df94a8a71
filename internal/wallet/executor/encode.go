package executor

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// Encode ABI-encodes a call of function with args, selector included.
// Unknown functions yield ErrInvalidFunction, args that do not fit the
// function's inputs ErrArgumentMismatch.
func Encode(contractABI *abi.ABI, function string, args []any) ([]byte, error) {
	if contractABI == nil {
		return nil, errors.Wrap(ErrInvalidFunction, "contract ABI is missing")
	}

	if _, ok := contractABI.Methods[function]; !ok {
		return nil, errors.Wrapf(ErrInvalidFunction, "function %q not found in ABI", function)
	}

	data, err := contractABI.Pack(function, args...)
	if err != nil {
		return nil, errors.Wrapf(ErrArgumentMismatch, "%s: %v", function, err)
	}

	return data, nil
}
