// Package hostcall implements the call protocol between host callers and a
// native wallet engine.
//
// Every operation goes through the same steps:
//
//  1. validate the inputs against the operation contract,
//  2. compute the output capacity with the operation's SizePolicy,
//  3. borrow inputs and output inside a buffer.Scope,
//  4. invoke the engine entry point behind the fault barrier (Protect),
//  5. check the written length (0 < written <= capacity),
//  6. convert the written region into bytes or a string.
//
// Operations are served by an immutable Table built with NewTable. The table
// wraps each operation with middleware (logging, metrics, fault recovery)
// in FIFO order:
//
//	bridge := hostcall.NewBridge(engine, hostcall.WithLogger(logger))
//	table, err := hostcall.NewTable(bridge,
//	    hostcall.WithMiddleware(hostcall.FaultRecoveryMiddleware()),
//	    hostcall.WithCatalog(),
//	)
//	res, err := table.Invoke(ctx, hostcall.OpHdWalletFromSeed, entities.Request{Inputs: [][]byte{seed}})
package hostcall
