// Command kundli generates Vedic birth charts from the command line or over HTTP.
package main

import (
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/cli"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/config"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/logging"
)

func main() {
	// Config is needed to build the command tree, so --config is read ahead of cobra.
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(logging.FromConfig(cfg.Logging))

	app := cli.NewApp(cfg, configDir, logger)
	if err := app.Execute(os.Args[1:]); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs finds --config DIR or --config=DIR.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
