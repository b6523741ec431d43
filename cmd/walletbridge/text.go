package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// textCmd calls the text operations whose names start with prefix.
func (c *cli) textCmd(use, prefix, short string) *cobra.Command {
	var hints []uint
	cmd := &cobra.Command{
		Use:   use + " OPERATION PARAMS",
		Short: short,
		Long: short + `.

OPERATION is the operation name without the "` + prefix + `" prefix. PARAMS is
the JSON text the operation takes, or - to read it from stdin. Count hints are
derived from PARAMS; --hint values must match them.

wallet from_master_key takes a hex XPrv and wallet check_address a base58
address instead of JSON.`,
		Args: cobra.ExactArgs(2),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			op := prefix + args[0]
			contract, ok := c.host.Table().Operation(op)
			if !ok {
				return &errors.NotFoundError{Name: op}
			}

			input := []byte(args[1])
			if args[1] == "-" {
				var err error
				if input, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read parameters: %w", err)
				}
			}

			client := c.host.Client()
			switch op {
			case hostcall.OpWalletFromMasterKey:
				xprv, err := decodeHex("xprv", string(input))
				if err != nil {
					return err
				}
				wallet, err := client.Wallet.FromMasterKey(cmd.Context(), xprv)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(wallet))
				return nil
			case hostcall.OpWalletCheckAddress:
				valid, err := client.Wallet.CheckAddress(cmd.Context(), string(input))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), valid)
				return nil
			}

			var explicit []uint32
			if cmd.Flags().Changed("hint") {
				if len(hints) != len(contract.Hints) {
					return &errors.ValidationError{
						Field: "hints",
						Err:   fmt.Errorf("%s takes %d count hints (%s), got %d", op, len(contract.Hints), strings.Join(contract.Hints, ", "), len(hints)),
					}
				}
				explicit = make([]uint32, len(hints))
				for i, h := range hints {
					if h > math.MaxUint32 {
						return fmt.Errorf("hint %d out of range", h)
					}
					explicit[i] = uint32(h)
				}
			}
			out, err := client.Call(cmd.Context(), op, input, explicit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}),
	}
	cmd.Flags().UintSliceVar(&hints, "hint", nil, "Count hint (repeatable)")
	return cmd
}
