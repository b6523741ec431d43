// Package host assembles a ready-to-use wallet bridge: it loads the
// configuration, selects the native engine, builds the operation table with
// its middleware chain, and exposes the typed façade.
//
//	h, err := host.New(ctx, host.WithConfigFile("wallet.yaml", nil))
//	if err != nil {
//	    return err
//	}
//	defer h.Close(ctx)
//	xprv, err := h.Client().HdWallet.FromSeed(ctx, seed)
package host
