// Package wallet is the typed façade over the operation table.
//
// It marshals parameters to the JSON texts the wallet engine expects, derives
// the count hints from those parameters, and decodes the engine's result
// envelope:
//
//	{"failed": false, "loc": "", "msg": "", "result": ...}
//
// A failed envelope becomes an *errors.EngineError. Parameters are checked
// with struct tags before anything crosses the bridge.
package wallet
