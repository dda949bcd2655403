package main

import (
	"fmt"
	"os"

	"github.com/seo-tools/traffic-atlas/pkg/runtime/terminal"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect/snapshot"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: collect.NewRegistry(map[string]collect.CollectorFactory{
			"ga4":      ga4.CollectorFactory,
			"snapshot": snapshot.CollectorFactory,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
