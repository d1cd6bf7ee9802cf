package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/1f349/zinnia/conf"
	"github.com/1f349/zinnia/logger"
	"github.com/1f349/zinnia/normalizer"
	"github.com/1f349/zinnia/renderer"
	"github.com/1f349/zinnia/serial"
	validateDomain "github.com/chmike/domain"
	"github.com/google/subcommands"
	"github.com/spf13/afero"
)

type generateCmd struct {
	inputPath  string
	outputPath string
	serialPath string
	format     string
}

func (g *generateCmd) Name() string { return "generate" }

func (g *generateCmd) Synopsis() string { return "Generate DNS server configuration from a zone description" }

func (g *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&g.inputPath, "i", "", "path to the YAML zone description (default stdin)")
	f.StringVar(&g.outputPath, "o", "", "path to the output file (default stdout)")
	f.StringVar(&g.serialPath, "s", ".serial", "path to the serial number file")
	f.StringVar(&g.format, "f", "unbound", "output format: "+strings.Join(renderer.Formats(), ", "))
}

func (g *generateCmd) Usage() string {
	return `generate [-i <input file>] [-o <output file>] [-s <serial file>] [-f <format>]
  Derive the full record set from the zone description and write the server configuration
`
}

func (g *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	fs := afero.NewOsFs()

	var in io.Reader = os.Stdin
	if g.inputPath != "" {
		f, err := fs.Open(g.inputPath)
		if err != nil {
			logger.Logger.Error("Open input file: ", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		in = f
	}

	return g.run(fs, in, os.Stdout, time.Now())
}

func (g *generateCmd) run(fs afero.Fs, in io.Reader, stdout io.Writer, now time.Time) subcommands.ExitStatus {
	rend, ok := renderer.Get(g.format)
	if !ok {
		logger.Logger.Error("Unknown output format", "format", g.format)
		return subcommands.ExitUsageError
	}

	doc, err := conf.Parse(in)
	if err != nil {
		logger.Logger.Error("Invalid zone description: ", err)
		return subcommands.ExitFailure
	}
	if len(doc.Zones) == 0 {
		logger.Logger.Info("No zones declared, nothing to do")
		return subcommands.ExitSuccess
	}
	for _, z := range doc.Zones {
		if err := validateDomain.Check(strings.TrimSuffix(z.Name, ".")); err != nil {
			logger.Logger.Warn("Zone name fails validation", "zone", z.Name, "err", err)
		}
	}

	previous, err := serial.Load(fs, g.serialPath)
	if err != nil {
		logger.Logger.Error("Read serial file: ", err)
		return subcommands.ExitFailure
	}
	next := serial.Next(now, previous)

	zones, err := normalizer.Normalize(doc, next)
	if err != nil {
		logger.Logger.Error("Failed to derive records: ", err)
		return subcommands.ExitFailure
	}

	out := stdout
	if g.outputPath != "" {
		f, err := fs.Create(g.outputPath)
		if err != nil {
			logger.Logger.Error("Open output file: ", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}

	if err := rend.Render(out, zones); err != nil {
		logger.Logger.Error("Write output: ", err)
		return subcommands.ExitFailure
	}

	// a failed run must not burn a serial, so this happens last
	if err := serial.Store(fs, g.serialPath, next); err != nil {
		logger.Logger.Error("Write serial file: ", err)
		return subcommands.ExitFailure
	}

	counts := normalizer.RecordCounts()
	logger.Logger.Info("Derived records",
		"zones", len(zones),
		"address", counts["address"],
		"ptr", counts["ptr"],
		"ns", counts["ns"],
		"mx", counts["mx"],
		"srv", counts["srv"])
	return subcommands.ExitSuccess
}
