// Command atlaspack packs square power of two images into a single texture
// atlas and writes the atlas image plus a CBOR manifest describing where each
// input went.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger.New(cfg.LogLevel)
	defer logger.OnExit()
	log := logger.Sugar.WithServiceName("atlaspack")

	p, closeStore, err := newPacker(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeStore()

	results, err := p.run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, r := range results {
		if len(r.Skipped) > 0 && cfg.Strict {
			fmt.Fprintf(os.Stderr, "%d inputs did not fit %s\n", len(r.Skipped), r.Output)
			return 1
		}
	}
	return 0
}

// parseArgs builds the configuration: defaults, then the -config file, then
// any flags given explicitly. Positional arguments are appended to the inputs.
func parseArgs(args []string) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("atlaspack", flag.ContinueOnError)
	var (
		configPath string
		size       uint64
		maxLevel   uint
		alpha      bool
		split      bool
		resize     bool
		strict     bool
		out        string
		manifest   string
		logLevel   string
	)
	fs.StringVar(&configPath, "config", "", "toml configuration file")
	fs.Uint64Var(&size, "size", cfg.AtlasSize, "atlas edge in pixels, a power of two")
	fs.UintVar(&maxLevel, "max-level", uint(cfg.MaxLevel), "finest quadtree level")
	fs.BoolVar(&alpha, "alpha", false, "pack into an RGBA atlas")
	fs.BoolVar(&split, "split", false, "pack opaque and transparent inputs into separate atlases")
	fs.BoolVar(&resize, "resize", false, "scale inputs down to a square power of two")
	fs.BoolVar(&strict, "strict", false, "exit with an error if any input was not packed")
	fs.StringVar(&out, "out", cfg.Output, "atlas png output")
	fs.StringVar(&manifest, "manifest", cfg.Manifest, "manifest output")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if configPath != "" {
		if err := readConfig(configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.AtlasSize = size
		case "max-level":
			cfg.MaxLevel = uint8(maxLevel)
		case "alpha":
			cfg.Alpha = alpha
		case "split":
			cfg.Split = split
		case "resize":
			cfg.ResizeToPow2 = resize
		case "strict":
			cfg.Strict = strict
		case "out":
			cfg.Output = out
		case "manifest":
			cfg.Manifest = manifest
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
	if maxLevel > 255 {
		return config{}, fmt.Errorf("max-level %d out of range", maxLevel)
	}
	cfg.Inputs = append(cfg.Inputs, fs.Args()...)

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}
