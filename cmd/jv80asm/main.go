package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JanDeVisser/jv80/config"
	"github.com/JanDeVisser/jv80/cpu"
	"github.com/JanDeVisser/jv80/io"
	"github.com/JanDeVisser/jv80/translate"
)

var f = translate.From

var (
	ErrAssembly     = errors.New(f("assembly failed"))
	ErrDefineSyntax = errors.New(f("define must be NAME=VALUE"))
)

type options struct {
	logLevel   string
	verbose    bool
	configPath string
	out        string
	noout      bool
	list       bool
	address    bool
	objdump    bool
	includes   []string
	defines    []string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "jv80asm [flags] FILE...",
		Short: "Assembler for the JV-80",
		Args:  cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return before(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.logLevel, "log-level", "warn", "logging level")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "trace every line, segment and include")
	fl.StringVar(&opts.configPath, "config", "", "configuration file (default ./"+config.DefaultFile+")")
	fl.StringVarP(&opts.out, "out", "o", "", "output file (default first input with .bin extension)")
	fl.BoolVar(&opts.noout, "noout", false, "do not write an output file")
	fl.BoolVar(&opts.list, "list", false, "print a listing")
	fl.BoolVar(&opts.address, "address", false, "prefix listing lines with addresses")
	fl.BoolVar(&opts.objdump, "objdump", false, "print a hex dump of the binary")
	fl.StringArrayVarP(&opts.includes, "include", "I", nil, "include search directory")
	fl.StringArrayVarP(&opts.defines, "define", "D", nil, "predefine NAME=VALUE")

	return cmd
}

func before(opts *options) error {
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return nil
	}

	if opts.logLevel != "" {
		parsedLogLevel, err := logrus.ParseLevel(opts.logLevel)
		if err != nil {
			return fmt.Errorf("parsing log level %q: %w", opts.logLevel, err)
		}
		logrus.SetLevel(parsedLogLevel)
	}

	return nil
}

// parseDefine splits NAME=VALUE. A bare NAME is defined as 1.
func parseDefine(text string) (name string, value int, err error) {
	name, word, found := strings.Cut(text, "=")
	if len(name) == 0 {
		err = fmt.Errorf("%w: %q", ErrDefineSyntax, text)
		return
	}
	if !found {
		value = 1
		return
	}

	v64, err := strconv.ParseInt(strings.Replace(word, "$", "0x", 1), 0, 32)
	if err != nil || v64 < cpu.ADDRESS_MIN || v64 > cpu.ADDRESS_MAX {
		err = fmt.Errorf("%w: %q", ErrDefineSyntax, text)
		return
	}
	value = int(v64)

	return
}

// loadConfig reads the configuration, and applies it to every option not
// set on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (cfg *config.Config, err error) {
	if len(opts.configPath) != 0 {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Default(".")
	}
	if err != nil {
		return
	}

	fl := cmd.Flags()
	if !fl.Changed("out") {
		opts.out = cfg.Output
	}
	if !fl.Changed("list") {
		opts.list = cfg.List
	}
	if !fl.Changed("address") {
		opts.address = cfg.Address
	}
	if !fl.Changed("objdump") {
		opts.objdump = cfg.Objdump
	}
	opts.includes = append(opts.includes, cfg.Include...)

	return
}

// output returns the name of the binary to write.
func output(opts *options, args []string) string {
	if len(opts.out) != 0 {
		return opts.out
	}
	return strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".bin"
}

func run(cmd *cobra.Command, opts *options, args []string) (err error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Verbose: opts.verbose}
	for name, value := range cfg.Define {
		asm.Predefine(name, value)
	}
	for _, text := range opts.defines {
		name, value, err := parseDefine(text)
		if err != nil {
			return err
		}
		asm.Predefine(name, value)
	}
	asm.Reset()

	for _, file := range args {
		asm.Source = io.NewFileSource(append([]string{filepath.Dir(file)}, opts.includes...)...)
		_ = asm.ParseFile(filepath.Base(file))
	}

	prog, err := asm.Assemble()

	stdout := cmd.OutOrStdout()
	if opts.list {
		for line := range asm.Image.ListingLines(opts.address) {
			fmt.Fprintln(stdout, line)
		}
	}

	if err != nil {
		for _, diag := range asm.Image.Diagnostics() {
			logrus.Error(diag)
		}
		return fmt.Errorf("%w: %d errors", ErrAssembly, len(asm.Image.Errors()))
	}

	if opts.objdump {
		fmt.Fprintln(stdout, prog.Dump())
	}

	if !opts.noout {
		out := output(opts, args)
		err = io.Save(io.DirFS(filepath.Dir(out)), filepath.Base(out), asm.Image)
		if err != nil {
			return
		}
		logrus.Infof("%v: %d bytes at 0x%04x", out, len(prog.Binary), prog.Start)
	}

	return
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
