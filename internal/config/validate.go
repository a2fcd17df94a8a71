package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func isAddress(value string, name string) vala.Checker {
	return func() (bool, string) {
		return common.IsHexAddress(value), fmt.Sprintf("parameter %s is not a hex address: %q", name, value)
	}
}

func isEther(value string, name string) vala.Checker {
	return func() (bool, string) {
		_, err := ParseEther(value)
		if err != nil {
			return false, fmt.Sprintf("parameter %s: %v", name, err)
		}
		return true, ""
	}
}

func isLogLevel(value string, name string) vala.Checker {
	return func() (bool, string) {
		_, err := zerolog.ParseLevel(value)
		return err == nil, fmt.Sprintf("parameter %s is not a log level: %q", name, value)
	}
}

func isRange(start, end uint32) vala.Checker {
	return func() (bool, string) {
		return start <= end, fmt.Sprintf("account.start_index %d is after account.end_index %d", start, end)
	}
}

func (c Config) baseCheckers() []vala.Checker {
	return []vala.Checker{
		vala.StringNotEmpty(c.Network.RPCURL, "network.rpc_url"),
		isLogLevel(c.Logger.Level, "logger.level"),
		isRange(c.Account.StartIndex, c.Account.EndIndex),
	}
}

// ValidateAccounts checks what deriving identities needs.
func (c Config) ValidateAccounts() error {
	return check(vala.BeginValidation().Validate(
		isRange(c.Account.StartIndex, c.Account.EndIndex),
		isLogLevel(c.Logger.Level, "logger.level"),
	))
}

// ValidateDistribute checks what the distribute command needs.
func (c Config) ValidateDistribute() error {
	return check(vala.BeginValidation().Validate(c.baseCheckers()...).Validate(
		vala.StringNotEmpty(c.Distributor.Artifact, "distributor.artifact"),
		isAddress(c.Distributor.Address, "distributor.address"),
		vala.StringNotEmpty(c.Distributor.SenderKey, "distributor.sender_key"),
		isEther(c.Distributor.Amount, "distributor.amount"),
	))
}

// ValidateMint checks what the mint command needs.
func (c Config) ValidateMint() error {
	return check(vala.BeginValidation().Validate(c.baseCheckers()...).Validate(
		vala.StringNotEmpty(c.Mint.Artifact, "mint.artifact"),
		isAddress(c.Mint.Address, "mint.address"),
		isEther(c.Mint.Value, "mint.value"),
	))
}

// ValidateQuery checks what the query command needs.
func (c Config) ValidateQuery() error {
	return check(vala.BeginValidation().Validate(c.baseCheckers()...).Validate(
		vala.StringNotEmpty(c.Mint.Artifact, "mint.artifact"),
		isAddress(c.Mint.Address, "mint.address"),
	))
}

func check(v *vala.Validation) error {
	if err := v.Check(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
