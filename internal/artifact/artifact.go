// Package artifact reads compiled contract artifacts as written by Foundry
// (`forge build`) and Hardhat.
package artifact

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// ErrNotJSON is returned for artifact files that do not contain JSON.
var ErrNotJSON = errors.New("artifact is not a JSON document")

// Artifact is a contract interface description plus its creation bytecode.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

type bytecode struct {
	Object string `json:"object"`
}

// UnmarshalJSON accepts both Foundry's {"object": "0x.."} and Hardhat's plain string.
func (b *bytecode) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		b.Object = plain
		return nil
	}

	type alias bytecode
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = bytecode(obj)
	return nil
}

type document struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     *bytecode       `json:"bytecode"`
}

// Load reads an artifact file. The artifact name defaults to the file name
// without extension.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read artifact %s", path)
	}

	art, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse artifact %s", path)
	}

	if art.Name == "" {
		art.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return art, nil
}

// Parse decodes an artifact document. A bare ABI array is accepted as well,
// yielding an artifact without bytecode.
func Parse(data []byte) (*Artifact, error) {
	if !isJSON(data) {
		return nil, ErrNotJSON
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		parsed, err := abi.JSON(bytes.NewReader(trimmed))
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode ABI")
		}
		return &Artifact{ABI: parsed}, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode artifact")
	}

	if len(doc.ABI) == 0 {
		return nil, errors.New("artifact has no abi field")
	}

	parsed, err := abi.JSON(bytes.NewReader(doc.ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode ABI")
	}

	art := &Artifact{
		Name: doc.ContractName,
		ABI:  parsed,
	}

	if doc.Bytecode != nil && doc.Bytecode.Object != "" && doc.Bytecode.Object != "0x" {
		object := doc.Bytecode.Object
		if !strings.HasPrefix(object, "0x") {
			object = "0x" + object
		}

		art.Bytecode, err = hexutil.Decode(object)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode bytecode")
		}
	}

	return art, nil
}

func isJSON(data []byte) bool {
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("application/json") {
			return true
		}
	}
	return false
}
