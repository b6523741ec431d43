package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Emurgo/node-cardano-wallet/application/schema"
)

type opInfo struct {
	Name        string   `json:"name"`
	Entry       string   `json:"entry"`
	Inputs      []string `json:"inputs"`
	Hints       []string `json:"hints,omitempty"`
	Output      string   `json:"output"`
	Capacity    string   `json:"capacity"`
	Provided    bool     `json:"provided"`
	Description string   `json:"description"`
}

func (c *cli) opsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operations and whether the engine provides them",
		Args:  cobra.NoArgs,
		RunE: c.withHost(func(cmd *cobra.Command, _ []string) error {
			var infos []opInfo
			for _, op := range c.host.Table().Describe() {
				_, provided := c.host.Engine().EntryPoint(op.Entry)
				info := opInfo{
					Name:        op.Name,
					Entry:       op.Entry,
					Hints:       op.Hints,
					Output:      op.Output.String(),
					Capacity:    op.Policy.String(),
					Provided:    provided,
					Description: op.Description,
				}
				for _, in := range op.Inputs {
					info.Inputs = append(info.Inputs, in.Name)
				}
				infos = append(infos, info)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tINPUTS\tOUTPUT\tCAPACITY\tPROVIDED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
					info.Name, strings.Join(info.Inputs, ","), info.Output, info.Capacity, info.Provided)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func (c *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema OPERATION|config",
		Short: "Print the JSON schema of an operation's parameters or of the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out []byte
				err error
			)
			if args[0] == "config" {
				out, err = schema.Config()
			} else {
				out, err = schema.ForOperation(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
