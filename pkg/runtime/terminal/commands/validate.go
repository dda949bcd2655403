package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	profilePath string
}

// NewValidateCmd builds the preflight check command. It verifies that a
// profile is complete enough to run an analysis without touching the API.
func NewValidateCmd() *cobra.Command {
	vc := &ValidateCmd{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an analysis profile before running it",
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.profilePath, "profile", "", "Path to the analysis profile")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(out, "  [fail] %s: %v\n", name, err)
			return
		}
		fmt.Fprintf(out, "  [ok]   %s\n", name)
	}

	fmt.Fprintf(out, "Validating profile %s\n", vc.profilePath)

	profile, err := ga4.LoadConfig(vc.profilePath)
	check("profile parses", err)
	if err != nil {
		return fmt.Errorf("profile is not usable")
	}

	check("date ranges", profile.AnalysisConfig().Validate())
	check("credentials file", vc.checkCredentials(profile))
	check("output dir writable", vc.checkOutputDir(profile.OutputDir))

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "Profile is ready.")
	return nil
}

func (vc *ValidateCmd) checkCredentials(profile *ga4.Config) error {
	if profile.CredentialsFile == "" {
		return fmt.Errorf("credentials_file is not set")
	}
	data, err := os.ReadFile(profile.CredentialsFile)
	if err != nil {
		return err
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if profile.AuthMode == ga4.AuthModeServiceAccount {
		if parsed["type"] != "service_account" {
			return fmt.Errorf("expected a service account key file")
		}
	}
	return nil
}

func (vc *ValidateCmd) checkOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".write-check")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
