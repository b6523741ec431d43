package entities

import "fmt"

// OutputEncoding selects how the written output region becomes a host value.
type OutputEncoding int

const (
	// OutputBytes returns a copy of the written bytes.
	OutputBytes OutputEncoding = iota
	// OutputText returns the written bytes as a string.
	OutputText
)

func (e OutputEncoding) String() string {
	switch e {
	case OutputBytes:
		return "bytes"
	case OutputText:
		return "text"
	default:
		return fmt.Sprintf("OutputEncoding(%d)", int(e))
	}
}

// InputKind tells whether an input is raw bytes or UTF-8 text.
type InputKind int

const (
	InputBytes InputKind = iota
	InputText
)

func (k InputKind) String() string {
	if k == InputText {
		return "text"
	}
	return "bytes"
}

// InputSpec describes one positional input of an operation.
// Exact and AtLeast are ignored when zero.
type InputSpec struct {
	// Name is used in error messages, e.g. "seed" or "XPrv".
	Name    string
	Kind    InputKind
	Exact   int
	AtLeast int
}

// IndexPolicy restricts the derivation index accepted by an operation.
type IndexPolicy int

const (
	// IndexUnused means the operation takes no index.
	IndexUnused IndexPolicy = iota
	// IndexAny accepts every 32-bit index.
	IndexAny
	// IndexSoftOnly rejects hardened indices.
	IndexSoftOnly
)

// OperationContract is the static description of one exported operation.
// Contracts are built once and never mutated.
type OperationContract struct {
	// Name is the host-facing operation name.
	Name string
	// Entry is the engine entry point invoked by the operation.
	Entry string
	// Inputs lists the positional inputs in call order.
	Inputs []InputSpec
	// Index restricts the derivation index.
	Index IndexPolicy
	// Hints names the count hints the size policy consumes, in order.
	Hints []string
	// Output selects the result encoding.
	Output OutputEncoding
	// ExactOutput requires the engine to fill the whole output region.
	ExactOutput bool
	// Description is a one-line summary used in listings.
	Description string
}

// Request carries the arguments of a single call.
type Request struct {
	Inputs [][]byte
	Index  uint32
	Hints  []uint32
}

// Result is the host value produced by a successful call.
type Result struct {
	Encoding OutputEncoding
	Bytes    []byte
	Text     string
}

// Len returns the size of the result payload.
func (r Result) Len() int {
	if r.Encoding == OutputText {
		return len(r.Text)
	}
	return len(r.Bytes)
}
