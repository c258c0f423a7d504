// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package formatting

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/luxfi/crypto/hash"
)

const (
	hexPrefix   = "0x"
	checksumLen = 4
)

var (
	errEncodingOverFlow = errors.New("encoding overflow")
	errInvalidEncoding  = errors.New("invalid encoding")
	errMissingChecksum  = errors.New("input string is smaller than the checksum size")
	errBadChecksum      = errors.New("invalid input checksum")
	errMissingHexPrefix = errors.New("missing 0x prefix to hex encoding")
	errMissingQuotes    = errors.New("first and last characters should be quotes")
)

// Encoding defines how bytes are converted to a string.
type Encoding uint8

const (
	// Hex specifies a hex plus 4 byte checksum encoding format.
	Hex Encoding = iota
	// JSON specifies the JSON encoding format.
	JSON
)

func (enc Encoding) String() string {
	switch enc {
	case Hex:
		return "hex"
	case JSON:
		return "json"
	default:
		return errInvalidEncoding.Error()
	}
}

func (enc Encoding) valid() bool {
	switch enc {
	case Hex, JSON:
		return true
	}
	return false
}

func (enc Encoding) MarshalJSON() ([]byte, error) {
	if !enc.valid() {
		return nil, errInvalidEncoding
	}
	return []byte(`"` + enc.String() + `"`), nil
}

func (enc *Encoding) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == "null" {
		return nil
	}
	if len(str) < 2 {
		return errMissingQuotes
	}

	lastIndex := len(str) - 1
	if str[0] != '"' || str[lastIndex] != '"' {
		return errMissingQuotes
	}

	switch strings.ToLower(str[1:lastIndex]) {
	case "hex":
		*enc = Hex
	case "json":
		*enc = JSON
	default:
		return errInvalidEncoding
	}
	return nil
}

// Encode converts [bytes] to a string using the given encoding. For Hex
// a 4 byte checksum is appended before hex conversion.
func Encode(encoding Encoding, bytes []byte) (string, error) {
	if !encoding.valid() {
		return "", errInvalidEncoding
	}

	switch encoding {
	case Hex:
		bytesLen := len(bytes)
		if bytesLen > math.MaxInt32-checksumLen {
			return "", errEncodingOverFlow
		}
		checked := make([]byte, bytesLen+checksumLen)
		copy(checked, bytes)
		copy(checked[bytesLen:], checksum(bytes))
		return fmt.Sprintf("0x%x", checked), nil
	default:
		return string(bytes), nil
	}
}

// Decode converts [str] to bytes using the given encoding, verifying the
// checksum where the encoding carries one.
func Decode(encoding Encoding, str string) ([]byte, error) {
	switch {
	case !encoding.valid():
		return nil, errInvalidEncoding
	case len(str) == 0:
		return nil, nil
	}

	switch encoding {
	case Hex:
		if !strings.HasPrefix(str, hexPrefix) {
			return nil, errMissingHexPrefix
		}
		decoded, err := hex.DecodeString(strings.TrimPrefix(str, hexPrefix))
		if err != nil {
			return nil, err
		}
		if len(decoded) < checksumLen {
			return nil, errMissingChecksum
		}
		rawBytes := decoded[:len(decoded)-checksumLen]
		if !bytes.Equal(decoded[len(decoded)-checksumLen:], checksum(rawBytes)) {
			return nil, errBadChecksum
		}
		return rawBytes, nil
	default:
		return []byte(str), nil
	}
}

// checksum is the last 4 bytes of the sha256 of [bytes].
func checksum(bytes []byte) []byte {
	hashed := hash.ComputeHash256(bytes)
	return hashed[len(hashed)-checksumLen:]
}
