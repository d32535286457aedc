package encoding

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base     = int64(62)
	maxLen   = 11
)

var (
	ErrInvalidChar = errors.New("invalid character in base62 string")
	ErrOverflow    = errors.New("base62 value overflows int64")
)

// Base62Encode renders a non-negative id in base62. Negative ids are encoded
// by magnitude.
func Base62Encode(id int64) string {
	if id == 0 {
		return string(alphabet[0])
	}

	var chars [maxLen]byte
	k := maxLen
	n := id
	if n < 0 {
		n = -n
	}

	for n > 0 {
		k--
		chars[k] = alphabet[n%base]
		n /= base
	}

	return string(chars[k:])
}

// Base62Decode is the inverse of Base62Encode for non-negative ids.
func Base62Decode(s string) (int64, error) {
	if s == "" {
		return 0, errors.Wrap(ErrInvalidChar, "empty input")
	}

	var id int64
	for _, char := range s {
		index := strings.IndexRune(alphabet, char)
		if index == -1 {
			return 0, errors.Wrapf(ErrInvalidChar, "%q", char)
		}
		if id > (math.MaxInt64-int64(index))/base {
			return 0, ErrOverflow
		}
		id = id*base + int64(index)
	}
	return id, nil
}
