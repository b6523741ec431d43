package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

func (c *cli) hdwalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hdwallet",
		Short: "Ed25519-BIP32 key operations",
	}

	var password string
	fromEntropy := &cobra.Command{
		Use:   "from-entropy ENTROPY",
		Short: "Derive a root XPrv from BIP39 entropy",
		Args:  cobra.ExactArgs(1),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			entropy, err := decodeHex("entropy", args[0])
			if err != nil {
				return err
			}
			xprv, err := c.host.Client().HdWallet.FromEnhancedEntropy(cmd.Context(), entropy, password)
			if err != nil {
				return err
			}
			printHex(cmd, xprv)
			return nil
		}),
	}
	fromEntropy.Flags().StringVar(&password, "password", "", "Spending password")

	fromSeed := &cobra.Command{
		Use:   "from-seed SEED",
		Short: "Derive a root XPrv from a 32-byte legacy seed",
		Args:  cobra.ExactArgs(1),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			seed, err := decodeHex("seed", args[0])
			if err != nil {
				return err
			}
			xprv, err := c.host.Client().HdWallet.FromSeed(cmd.Context(), seed)
			if err != nil {
				return err
			}
			printHex(cmd, xprv)
			return nil
		}),
	}

	toPublic := &cobra.Command{
		Use:   "to-public XPRV",
		Short: "Print the XPub of an XPrv",
		Args:  cobra.ExactArgs(1),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			xprv, err := decodeHex("xprv", args[0])
			if err != nil {
				return err
			}
			xpub, err := c.host.Client().HdWallet.ToPublic(cmd.Context(), xprv)
			if err != nil {
				return err
			}
			printHex(cmd, xpub)
			return nil
		}),
	}

	derivePrivate := &cobra.Command{
		Use:   "derive-private XPRV INDEX",
		Short: "Derive a child XPrv; suffix INDEX with H or ' for hardened",
		Args:  cobra.ExactArgs(2),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			xprv, err := decodeHex("xprv", args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			child, err := c.host.Client().HdWallet.DerivePrivate(cmd.Context(), xprv, index)
			if err != nil {
				return err
			}
			printHex(cmd, child)
			return nil
		}),
	}

	derivePublic := &cobra.Command{
		Use:   "derive-public XPUB INDEX",
		Short: "Derive a child XPub at a soft index",
		Args:  cobra.ExactArgs(2),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			xpub, err := decodeHex("xpub", args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			child, err := c.host.Client().HdWallet.DerivePublic(cmd.Context(), xpub, index)
			if err != nil {
				return err
			}
			printHex(cmd, child)
			return nil
		}),
	}

	var hexMessage bool
	sign := &cobra.Command{
		Use:   "sign XPRV MESSAGE",
		Short: "Sign a message",
		Args:  cobra.ExactArgs(2),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			xprv, err := decodeHex("xprv", args[0])
			if err != nil {
				return err
			}
			msg := []byte(args[1])
			if hexMessage {
				if msg, err = decodeHex("message", args[1]); err != nil {
					return err
				}
			}
			sig, err := c.host.Client().HdWallet.Sign(cmd.Context(), xprv, msg)
			if err != nil {
				return err
			}
			printHex(cmd, sig)
			return nil
		}),
	}
	sign.Flags().BoolVar(&hexMessage, "hex", false, "MESSAGE is hex encoded")

	cmd.AddCommand(fromEntropy, fromSeed, toPublic, derivePrivate, derivePublic, sign)
	return cmd
}

// parseIndex accepts decimal indices, with an H or ' suffix for hardened ones.
func parseIndex(s string) (uint32, error) {
	hardened := false
	if t, ok := strings.CutSuffix(s, "H"); ok {
		s, hardened = t, true
	} else if t, ok := strings.CutSuffix(s, "'"); ok {
		s, hardened = t, true
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	index := uint32(n)
	if hardened {
		if index >= entities.HardenedIndex {
			return 0, fmt.Errorf("hardened index %d out of range", index)
		}
		index |= entities.HardenedIndex
	}
	return index, nil
}
