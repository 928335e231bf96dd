package cmd

import (
	"fmt"
	"strconv"

	"corpkit/pkg/ipaddr"

	"github.com/spf13/cobra"
)

func newIPCmd() *cobra.Command {
	ipCmd := &cobra.Command{
		Use:   "ip",
		Short: "Convert IPv4 addresses",
	}
	ipCmd.AddCommand(newIPEncodeCmd(), newIPDecodeCmd(), newIPNormalizeCmd())
	return ipCmd
}

func newIPEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode <dotted>",
		Short: "Encode a dotted address as an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			if strict {
				n, err := ipaddr.Parse(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}

			n, ok := ipaddr.Encode(args[0])
			if !ok {
				return fmt.Errorf("cannot encode %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	encodeCmd.Flags().Bool("strict", false, "Require four octets in the range 0-255")
	return encodeCmd
}

func newIPDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <integer>",
		Short: "Decode an integer to a dotted address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid encoded address %q: %w", args[0], err)
			}
			dotted, ok := ipaddr.Decode(n)
			if !ok {
				return fmt.Errorf("%d has no dotted form", n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dotted)
			return nil
		},
	}
}

func newIPNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <value>",
		Short: "Print the dotted form of an encoded or dotted address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, ok := ipaddr.Normalize(args[0])
			if !ok {
				return fmt.Errorf("%q has no dotted form", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}
}
