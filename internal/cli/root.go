package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/croian/genhosts/ipv4"
	"github.com/croian/genhosts/namegen"
)

type outputFormat string

const (
	outHuman outputFormat = "human"
	outJSON  outputFormat = "json"
	outYAML  outputFormat = "yaml"
)

var rootCmd = &cobra.Command{
	Use:   "genhosts",
	Short: "Fabricate random hostname/IPv4-address pairs for test fixtures",
	Long:  "genhosts generates pseudo-random hostname,address pairs for one or more IPv4 subnets, plus basic subnet calculations (info, range).",
}

var format outputFormat

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP((*string)(&format), "output", "o", string(outHuman), "output format: human|json|yaml")
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(wordsCmd)
}

func render(v any) error {
	w := rootCmd.OutOrStdout()
	switch format {
	case outHuman:
		fmt.Fprintln(w, v)
	case outJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return errors.New("unknown output format")
	}
	return nil
}

// renderLines prints one string per line in human mode and falls back to the
// structured encoders otherwise.
func renderLines(lines []string) error {
	if format == outHuman {
		w := rootCmd.OutOrStdout()
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
		return nil
	}
	return render(lines)
}

// ---- Commands ----

var genCmd = &cobra.Command{
	Use:   "gen <subnet> [subnet...]",
	Short: "Generate random hostname/address pairs for one or more subnets",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := DefaultConfig()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		// explicit flags win over the config file
		if cmd.Flags().Changed("min-word-len") {
			cfg.MinWordLength, _ = cmd.Flags().GetInt("min-word-len")
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		}

		var subnets []ipv4.CIDR
		for _, a := range args {
			c, err := ipv4.Parse(a)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "genhosts: can't parse subnet %s: %v\n", a, err)
				continue
			}
			subnets = append(subnets, c)
		}
		if len(subnets) == 0 {
			return errors.New("no usable subnets")
		}

		g, err := namegen.New(cfg.MinWordLength, cfg.Seed)
		if err != nil {
			return err
		}
		pairs := g.Pairs(subnets)
		if format == outHuman {
			lines := make([]string, len(pairs))
			for i, p := range pairs {
				lines[i] = p.String()
			}
			return renderLines(lines)
		}
		return render(pairs)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <subnet>",
	Short: "Show information about an IPv4 address or network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ipv4.Parse(args[0])
		if err != nil {
			return err
		}
		out := map[string]any{
			"address":       c.AddrString(),
			"prefix_form":   c.String(),
			"standard_form": c.Standard(),
			"network":       c.NetworkCIDRString(),
			"netmask":       ipv4.FormatAddr(c.Mask()),
			"prefix_length": c.PrefixLength(),
			"first":         c.First().AddrString(),
			"last":          c.Last().AddrString(),
			"count":         c.Count(),
			"reverse":       c.ReverseDNS(),
		}
		return render(out)
	},
}

var rangeCmd = &cobra.Command{
	Use:   "range <subnet>",
	Short: "List every address in a subnet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ipv4.Parse(args[0])
		if err != nil {
			return err
		}
		var list []string
		it := c.Iter()
		for a, ok := it.Next(); ok; a, ok = it.Next() {
			list = append(list, a.AddrString())
		}
		return renderLines(list)
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Dump the pronounceable word list used for hostnames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		minLen, _ := cmd.Flags().GetInt("min-word-len")
		return renderLines(namegen.Words(minLen))
	},
}

func init() {
	genCmd.Flags().Int("min-word-len", defaultMinWordLength, "minimum hostname word length")
	genCmd.Flags().Int64("seed", 0, "random seed (0 seeds from the clock)")
	genCmd.Flags().String("config", "", "YAML generation profile")
	wordsCmd.Flags().Int("min-word-len", defaultMinWordLength, "minimum word length")
}
