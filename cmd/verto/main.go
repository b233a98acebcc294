package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/app"
	"github.com/ternarybob/verto/internal/common"
	"github.com/ternarybob/verto/internal/converter"
	"github.com/ternarybob/verto/internal/models"
	"github.com/ternarybob/verto/internal/server"
)

// cliOptions holds every command-line flag value.
type cliOptions struct {
	// Conversion flags
	outputPath string
	method     string
	noPretty   bool
	verbose    bool

	// Server flags
	serveMode bool
	port      int
	host      string

	// Misc flags
	configFile  string
	showVersion bool
}

// bindFlags registers all flags on fs and returns the struct they write to.
func bindFlags(fs *flag.FlagSet) *cliOptions {
	opts := &cliOptions{}
	fs.StringVar(&opts.outputPath, "o", "", "Output JSON file path (default: input basename with .json extension)")
	fs.StringVar(&opts.method, "m", "", fmt.Sprintf("Extraction method, one of %v (default: auto)", models.Methods()))
	fs.BoolVar(&opts.noPretty, "no-pretty", false, "Write compact JSON instead of indented output")
	fs.BoolVar(&opts.verbose, "v", false, "Enable verbose (debug) logging")
	fs.BoolVar(&opts.serveMode, "serve", false, "Start the web UI instead of converting a file")
	fs.IntVar(&opts.port, "p", 0, "Server port (overrides config)")
	fs.StringVar(&opts.host, "host", "", "Server host (overrides config)")
	fs.StringVar(&opts.configFile, "c", "", "Configuration file path")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version information")
	return opts
}

// parseArgs supports the documented "verto <pdf_path> [flags]" shape. The
// flag package stops parsing at the first positional argument, so flags
// written after the path need a second parse over the remaining arguments.
func parseArgs(fs *flag.FlagSet, args []string) (*cliOptions, string, error) {
	opts := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() == 0 {
		return opts, "", nil
	}

	pdfPath := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 0 {
		return nil, "", fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, pdfPath, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: verto <pdf_path> [-o output] [-m method] [-no-pretty] [-v]\n")
	fmt.Fprintf(os.Stderr, "       verto -serve [-p port] [-host host] [-c config.toml]\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	opts, pdfPath, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}

	if opts.showVersion {
		fmt.Printf("Verto version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	configPath := opts.configFile
	if configPath == "" {
		// Auto-discover config file in the current directory
		if _, err := os.Stat("verto.toml"); err == nil {
			configPath = "verto.toml"
		}
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Str("path", configPath).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, opts.port, opts.host)
	if opts.verbose {
		config.Logging.Level = "debug"
	}

	logger := common.InitLogger(config)

	if opts.serveMode {
		runServe(config, logger)
		return
	}

	if pdfPath == "" {
		usage()
		os.Exit(1)
	}
	runConvert(config, logger, opts, pdfPath)
}

// runConvert performs a single CLI conversion and prints a summary.
func runConvert(config *common.Config, logger arbor.ILogger, opts *cliOptions, pdfPath string) {
	method := models.Method(opts.method)
	if method == "" {
		method = models.Method(config.Converter.DefaultMethod)
	}

	output := opts.outputPath
	if output == "" {
		output = converter.DefaultOutputPath(pdfPath, config.Converter.OutputDir)
	}

	pretty := config.Converter.Pretty
	if opts.noPretty {
		pretty = false
	}

	service := converter.NewService(logger)
	envelope, err := service.Convert(pdfPath, method, output, pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Conversion complete")
	fmt.Printf("  Source:  %s\n", pdfPath)
	fmt.Printf("  Output:  %s\n", output)
	fmt.Printf("  Pages:   %d\n", envelope.Content.TotalPages)
	fmt.Printf("  Method:  %s\n", envelope.Content.ExtractionMethod)
}

// runServe starts the web UI with graceful shutdown on interrupt.
func runServe(config *common.Config, logger arbor.ILogger) {
	common.PrintBanner()

	logger.Info().
		Int("port", config.Server.Port).
		Str("host", config.Server.Host).
		Msg("Starting Verto server")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	srv := server.New(application)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Fatal().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
			}
		}()

		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("Interrupt signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
