package main

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/TFMV/AddressKey/internal/standardizer"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [address...]",
	Short: "Print the key of each address",
	Long:  "Prints one key per address argument. With no arguments, addresses are read from stdin, one per line.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			for _, address := range args {
				fmt.Fprintln(out, std.Normalize(address))
			}
			return nil
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			fmt.Fprintln(out, std.Normalize(scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			return eris.Wrap(err, "read stdin")
		}
		return nil
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand <address>",
	Short: "Print every key of a ranged address",
	Long:  `Expands a house-number range such as "110-120 Mayberry Way" and prints one key per number, sorted.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := std.ExpandRange(strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, key := range set.Sorted() {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

var containsCmd = &cobra.Command{
	Use:   "contains <a> <b>",
	Short: "Report whether one string is a case-insensitive prefix of the other",
	Long:  "Prints true or false. Exits with status 1 when the strings are not contained.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minLength, _ := cmd.Flags().GetInt("min-length")
		ok := standardizer.Contained(args[0], args[1], minLength)
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		if !ok {
			return errNotContained
		}
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <address>",
	Short: "Show the address after every normalization stage",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "input\t%s\n", strings.Join(args, " "))
		for _, stage := range std.Stages(strings.Join(args, " ")) {
			fmt.Fprintf(w, "%s\t%s\n", stage.Name, stage.Output)
		}
		return w.Flush()
	},
}

func init() {
	containsCmd.Flags().Int("min-length", 0, "minimum length both strings must have")

	rootCmd.AddCommand(normalizeCmd, expandCmd, containsCmd, explainCmd)
}
