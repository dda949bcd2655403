package commands

import (
	"fmt"

	"github.com/seo-tools/traffic-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type PropertiesCmd struct {
	registryPath string
}

func NewPropertiesCmd() *cobra.Command {
	pc := &PropertiesCmd{}
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List GA4 properties from the registry file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.registryPath, "registry", "properties.ini", "Path to the property registry file")

	return cmd
}

func (pc *PropertiesCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, err := config.NewRegistry(pc.registryPath)
	if err != nil {
		return fmt.Errorf("failed to load property registry %s: %w", pc.registryPath, err)
	}

	names, err := registry.GetProperties(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No properties configured.")
		return nil
	}

	for _, name := range names {
		property, err := registry.GetProperty(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", property.Name, property.PropertyID, property.ProfilePath)
	}
	return nil
}
