package main

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

func (c *cli) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password protection of data",
	}

	var (
		password string
		saltHex  string
		nonceHex string
	)
	encrypt := &cobra.Command{
		Use:   "encrypt DATA",
		Short: "Encrypt hex DATA; salt and nonce are random unless given",
		Args:  cobra.ExactArgs(1),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex("data", args[0])
			if err != nil {
				return err
			}
			salt, err := hexOrRandom("salt", saltHex, entities.SaltSize)
			if err != nil {
				return err
			}
			nonce, err := hexOrRandom("nonce", nonceHex, entities.NonceSize)
			if err != nil {
				return err
			}
			sealed, err := c.host.Client().PasswordProtect.Encrypt(cmd.Context(), []byte(password), salt, nonce, data)
			if err != nil {
				return err
			}
			printHex(cmd, sealed)
			return nil
		}),
	}
	encrypt.Flags().StringVar(&password, "password", "", "Password")
	encrypt.Flags().StringVar(&saltHex, "salt", "", "32-byte salt as hex")
	encrypt.Flags().StringVar(&nonceHex, "nonce", "", "12-byte nonce as hex")
	_ = encrypt.MarkFlagRequired("password")

	var decryptPassword string
	decrypt := &cobra.Command{
		Use:   "decrypt ENVELOPE",
		Short: "Decrypt a hex envelope",
		Args:  cobra.ExactArgs(1),
		RunE: c.withHost(func(cmd *cobra.Command, args []string) error {
			envelope, err := decodeHex("envelope", args[0])
			if err != nil {
				return err
			}
			plain, err := c.host.Client().PasswordProtect.Decrypt(cmd.Context(), []byte(decryptPassword), envelope)
			if err != nil {
				return err
			}
			printHex(cmd, plain)
			return nil
		}),
	}
	decrypt.Flags().StringVar(&decryptPassword, "password", "", "Password")
	_ = decrypt.MarkFlagRequired("password")

	cmd.AddCommand(encrypt, decrypt)
	return cmd
}

func hexOrRandom(name, s string, n int) ([]byte, error) {
	if s != "" {
		return decodeHex(name, s)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	return b, nil
}
