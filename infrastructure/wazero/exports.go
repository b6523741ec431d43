package wazero

import (
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// argKind is one parameter of a guest export.
type argKind struct {
	kind  int
	input int
}

const (
	argInPtr = iota
	argInLen
	argIndex
	argOutPtr
)

func inPtr(i int) argKind { return argKind{kind: argInPtr, input: i} }
func inLen(i int) argKind { return argKind{kind: argInLen, input: i} }

var (
	index  = argKind{kind: argIndex}
	outPtr = argKind{kind: argOutPtr}
)

// resultKind is the return convention of a guest export.
type resultKind int

const (
	resultVoid   resultKind = iota // no result, the output region is filled
	resultLength                   // signed written length or status
	resultZeroOK                   // 0 on success
	resultBool                     // non-zero on success
)

type export struct {
	args   []argKind
	result resultKind
	inputs int
}

func (e export) resultCount() int {
	if e.result == resultVoid {
		return 0
	}
	return 1
}

// exports describes the wallet_wasm C ABI, keyed by entry point name.
var exports = map[string]export{
	hostcall.EntryWalletFromEnhancedEntropy: {args: []argKind{inPtr(0), inLen(0), inPtr(1), inLen(1), outPtr}, result: resultZeroOK, inputs: 2},
	hostcall.EntryWalletFromSeed:            {args: []argKind{inPtr(0), outPtr}, result: resultVoid, inputs: 1},
	hostcall.EntryWalletToPublic:            {args: []argKind{inPtr(0), outPtr}, result: resultVoid, inputs: 1},
	hostcall.EntryWalletDerivePrivate:       {args: []argKind{inPtr(0), index, outPtr}, result: resultVoid, inputs: 1},
	hostcall.EntryWalletDerivePublic:        {args: []argKind{inPtr(0), index, outPtr}, result: resultBool, inputs: 1},
	hostcall.EntryWalletSign:                {args: []argKind{inPtr(0), inPtr(1), inLen(1), outPtr}, result: resultVoid, inputs: 2},
	hostcall.EntryEncryptWithPassword: {
		args:   []argKind{inPtr(0), inLen(0), inPtr(1), inPtr(2), inPtr(3), inLen(3), outPtr},
		result: resultLength, inputs: 4,
	},
	hostcall.EntryDecryptWithPassword:     {args: []argKind{inPtr(0), inLen(0), inPtr(1), inLen(1), outPtr}, result: resultLength, inputs: 2},
	hostcall.EntryXWalletFromMasterKey:    {args: []argKind{inPtr(0), outPtr}, result: resultLength, inputs: 1},
	hostcall.EntryXWalletDaedalusMnemonic: textExport,
	hostcall.EntryXWalletAccount:          textExport,
	hostcall.EntryXWalletAddresses:        textExport,
	hostcall.EntryXWalletCheckAddress:     textExport,
	hostcall.EntryXWalletSpend:            textExport,
	hostcall.EntryXWalletMove:             textExport,
	hostcall.EntryCheckerNew:              textExport,
	hostcall.EntryCheckerFromMnemonics:    textExport,
	hostcall.EntryCheckerCheck:            textExport,
}

var textExport = export{args: []argKind{inPtr(0), inLen(0), outPtr}, result: resultLength, inputs: 1}
