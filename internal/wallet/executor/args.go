package executor

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// ParseArgs converts textual arguments into the Go values abi.Pack expects for
// method's inputs. Integers accept decimal or 0x hex, bytes are 0x hex, and
// arrays are JSON lists of such strings. Tuples are not supported.
func ParseArgs(method abi.Method, raw []string) ([]any, error) {
	if len(raw) != len(method.Inputs) {
		return nil, errors.Wrapf(ErrArgumentMismatch, "%s expects %d arguments, got %d",
			method.Name, len(method.Inputs), len(raw))
	}

	args := make([]any, 0, len(raw))
	for i, input := range method.Inputs {
		value, err := parseValue(input.Type, raw[i])
		if err != nil {
			return nil, errors.Wrapf(ErrArgumentMismatch, "argument %d (%s %s): %v", i, input.Type.String(), input.Name, err)
		}
		args = append(args, value.Interface())
	}

	return args, nil
}

func parseValue(t abi.Type, s string) (reflect.Value, error) {
	s = strings.TrimSpace(s)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return reflect.Value{}, errors.Errorf("invalid address %q", s)
		}
		return reflect.ValueOf(common.HexToAddress(s)), nil

	case abi.UintTy, abi.IntTy:
		return parseInteger(t, s)

	case abi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case abi.StringTy:
		return reflect.ValueOf(s), nil

	case abi.BytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if len(b) != t.Size {
			return reflect.Value{}, errors.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v, nil

	case abi.SliceTy, abi.ArrayTy:
		return parseList(t, s)

	default:
		return reflect.Value{}, errors.Errorf("unsupported argument type %s", t.String())
	}
}

func parseInteger(t abi.Type, s string) (reflect.Value, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return reflect.Value{}, errors.Errorf("invalid integer %q", s)
	}

	if t.T == abi.UintTy && n.Sign() < 0 {
		return reflect.Value{}, errors.Errorf("negative value %s for %s", s, t.String())
	}

	if t.T == abi.UintTy && n.BitLen() > t.Size {
		return reflect.Value{}, errors.Errorf("value %s overflows %s", s, t.String())
	}
	if t.T == abi.IntTy {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return reflect.Value{}, errors.Errorf("value %s overflows %s", s, t.String())
		}
	}

	goType := t.GetType()
	if goType == bigIntType {
		return reflect.ValueOf(n), nil
	}

	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v, nil
}

func parseList(t abi.Type, s string) (reflect.Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return reflect.Value{}, errors.Wrap(err, "expected a JSON list")
	}

	if t.T == abi.ArrayTy && len(items) != t.Size {
		return reflect.Value{}, errors.Errorf("expected %d elements, got %d", t.Size, len(items))
	}

	var list reflect.Value
	if t.T == abi.ArrayTy {
		list = reflect.New(t.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}

	for i, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err != nil {
			text = string(item)
		}

		elem, err := parseValue(*t.Elem, text)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "element %d", i)
		}
		list.Index(i).Set(elem)
	}

	return list, nil
}
