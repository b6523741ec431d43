package hostcall

import (
	"fmt"
	"math/bits"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
)

// SizePolicy computes the output capacity of a call before the engine runs.
// The capacity is exactly the size of the region handed to the engine.
type SizePolicy interface {
	Capacity(req entities.Request) (uint64, error)
	String() string
}

// Fixed is a constant capacity.
type Fixed uint64

// Capacity implements SizePolicy.
func (f Fixed) Capacity(entities.Request) (uint64, error) {
	return uint64(f), nil
}

func (f Fixed) String() string {
	return fmt.Sprintf("%d", uint64(f))
}

// Linear derives the capacity from the request's count hints:
// (sum(hints) + Bias) * PerItem + Overhead.
type Linear struct {
	PerItem  uint64
	Bias     uint64
	Overhead uint64
}

// Capacity implements SizePolicy.
func (l Linear) Capacity(req entities.Request) (uint64, error) {
	items := l.Bias
	for _, h := range req.Hints {
		items += uint64(h)
	}
	hi, lo := bits.Mul64(items, l.PerItem)
	total, carry := bits.Add64(lo, l.Overhead, 0)
	if hi != 0 || carry != 0 {
		return 0, &errors.InputSizeError{Input: "hints", Reason: "output capacity overflows 64 bits"}
	}
	return total, nil
}

func (l Linear) String() string {
	switch {
	case l.Bias == 0 && l.Overhead == 0:
		return fmt.Sprintf("hints*%d", l.PerItem)
	case l.Bias == 0:
		return fmt.Sprintf("hints*%d+%d", l.PerItem, l.Overhead)
	default:
		return fmt.Sprintf("(hints+%d)*%d+%d", l.Bias, l.PerItem, l.Overhead)
	}
}

// Formula is a named capacity function over the request.
type Formula struct {
	Name string
	Fn   func(req entities.Request) (uint64, error)
}

// Capacity implements SizePolicy.
func (f Formula) Capacity(req entities.Request) (uint64, error) {
	return f.Fn(req)
}

func (f Formula) String() string {
	return f.Name
}

// EncryptCapacity sizes the password envelope around the plaintext input.
func EncryptCapacity(dataInput int) Formula {
	return Formula{
		Name: fmt.Sprintf("len(input %d)+%d", dataInput, entities.PasswordOverhead),
		Fn: func(req entities.Request) (uint64, error) {
			return uint64(len(req.Inputs[dataInput])) + entities.PasswordOverhead, nil
		},
	}
}

// DecryptCapacity sizes the plaintext of a password envelope input.
func DecryptCapacity(dataInput int) Formula {
	return Formula{
		Name: fmt.Sprintf("len(input %d)-%d", dataInput, entities.PasswordOverhead),
		Fn: func(req entities.Request) (uint64, error) {
			n := len(req.Inputs[dataInput])
			if n <= entities.PasswordOverhead {
				return 0, &errors.InputSizeError{Input: "data", Got: n, AtLeast: entities.PasswordOverhead + 1}
			}
			return uint64(n - entities.PasswordOverhead), nil
		},
	}
}
