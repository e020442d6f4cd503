package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/five82/opsview/internal/app"
	"github.com/five82/opsview/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errOut io.Writer) int {
	opts, code, ok := parseFlags(errOut, args)
	if !ok {
		return code
	}

	if err := requireTerminal(os.Stdout.Fd()); err != nil {
		fmt.Fprintf(errOut, "opsview: %v\n", err)
		return 1
	}
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(errOut, "opsview: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(errOut, "opsview: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns the app options, or ok=false with the exit code to use.
func parseFlags(errOut io.Writer, args []string) (app.Options, int, bool) {
	flagSet := flag.NewFlagSet("opsview", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	configPath := flagSet.StringP("config", "c", "", "config file path (default ~/.config/opsview/config.toml)")
	prefsPath := flagSet.String("prefs", "", "preferences file path (default ~/.config/opsview/prefs.toml)")
	apiURL := flagSet.String("api", "", "operations API base URL (overrides api_url)")
	verbose := flagSet.BoolP("verbose", "v", false, "enable debug logging")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(errOut, "Usage: opsview [options]")
			fmt.Fprint(errOut, flagSet.FlagUsages())
			return app.Options{}, 0, false
		}
		fmt.Fprintln(errOut, "error:", err)
		return app.Options{}, 2, false
	}
	if flagSet.NArg() > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument %q\n", flagSet.Arg(0))
		return app.Options{}, 2, false
	}

	return app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
		Verbose:    *verbose,
	}, 0, true
}

// requireTerminal fails when fd is not an interactive terminal.
func requireTerminal(fd uintptr) error {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return errors.New("stdout is not a terminal")
}
