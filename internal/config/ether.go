package config

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const etherDecimals = 18

// ParseEther converts a decimal ether amount such as "0.05" into wei.
func ParseEther(amount string) (*big.Int, error) {
	if amount == "" {
		return big.NewInt(0), nil
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ether amount %q", amount)
	}
	if d.IsNegative() {
		return nil, errors.Errorf("ether amount %q is negative", amount)
	}

	wei := d.Shift(etherDecimals)
	if !wei.IsInteger() {
		return nil, errors.Errorf("ether amount %q has more than %d decimals", amount, etherDecimals)
	}

	return wei.BigInt(), nil
}

// FormatEther renders wei as a decimal ether amount.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}
