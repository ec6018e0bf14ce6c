package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regulint/trueup/internal/constants"
)

// constantsCmd represents the constants command
var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Inspect and export the normative constants registry",
	Long: `The heuristics recompute every claim from a registry of published
constants: approved rates, inflation indices, apportionment ratios and
loan balances. These commands show the built-in registry and export it
as a starting point for a custom one.`,
}

var constantsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active constants registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		fmt.Printf("Registry: %s (%d constants)\n\n", registry.Version(), len(registry.Names()))
		for _, name := range registry.Names() {
			c, _ := registry.Lookup(name)
			fmt.Printf("  %-34s %12.4f  %s\n", name, c.Value, c.Source)
		}
		return nil
	},
}

var constantsInitCmd = &cobra.Command{
	Use:   "init <file.yaml>",
	Short: "Export the built-in registry as an editable YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := constants.Defaults().MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal constants: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Printf("Wrote %s\n", args[0])
		return nil
	},
}

func init() {
	constantsCmd.AddCommand(constantsShowCmd)
	constantsCmd.AddCommand(constantsInitCmd)
	rootCmd.AddCommand(constantsCmd)
}
