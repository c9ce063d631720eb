package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/text/transform"

	"github.com/wippyai/utfstream/canon"
	utferrors "github.com/wippyai/utfstream/errors"
	"github.com/wippyai/utfstream/scheme"
)

type config struct {
	from, to scheme.Scheme
	strict   bool
	writeBOM bool
	skipBOM  bool
	check    bool
	hex      bool
}

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so that deferred cleanup runs
// before main exits.
func realMain() int {
	var (
		fromName    = flag.String("from", "utf-8", "Source encoding scheme (utf-8, utf-16le, utf-16be, utf-32le, utf-32be)")
		toName      = flag.String("to", "utf-8", "Target encoding scheme")
		inFile      = flag.String("in", "", "Input file (default stdin)")
		outFile     = flag.String("out", "", "Output file (default stdout)")
		strict      = flag.Bool("strict", false, "Fail on the first ill-formed code unit")
		writeBOM    = flag.Bool("bom", false, "Write a byte order mark")
		skipBOM     = flag.Bool("skip-bom", false, "Drop a leading byte order mark from the input")
		check       = flag.Bool("check", false, "Only report whether the input is well-formed")
		hexDump     = flag.Bool("hex", false, "Write a hex dump instead of raw bytes")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()
	scheme.SetLogger(logger)
	canon.SetLogger(logger)

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	cfg := config{
		strict:   *strict,
		writeBOM: *writeBOM,
		skipBOM:  *skipBOM,
		check:    *check,
		hex:      *hexDump,
	}
	var err error
	if cfg.from, err = scheme.Parse(*fromName); err != nil {
		return usage(err)
	}
	if cfg.to, err = scheme.Parse(*toName); err != nil {
		return usage(err)
	}

	in := io.Reader(os.Stdin)
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			err = utferrors.Wrap(utferrors.PhaseConfig, utferrors.KindInvalidInput, err, "open input")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			err = utferrors.Wrap(utferrors.PhaseConfig, utferrors.KindInvalidInput, err, "create output")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	} else if cfg.to != scheme.UTF8 && term.IsTerminal(int(os.Stdout.Fd())) {
		// Raw UTF-16 or UTF-32 garbles a terminal.
		cfg.hex = true
	}

	logger.Debug("transcoding",
		zap.Stringer("from", cfg.from),
		zap.Stringer("to", cfg.to),
		zap.Bool("strict", cfg.strict),
		zap.Bool("check", cfg.check))

	wellFormed, err := run(cfg, in, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return verdict(cfg, wellFormed, os.Stderr)
}

// verdict reports an ill-formed input and returns the exit code for it:
// 1 in check mode, otherwise 0 after a warning on errOut.
func verdict(cfg config, wellFormed bool, errOut io.Writer) int {
	if wellFormed {
		return 0
	}
	if cfg.check {
		return 1
	}
	fmt.Fprintf(errOut, "warning: ill-formed %s input was replaced with U+FFFD\n", cfg.from)
	return 0
}

func usage(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintln(os.Stderr, "Usage: transcode -from <scheme> -to <scheme> [-in file] [-out file] [-strict] [-bom] [-skip-bom] [-hex]")
	fmt.Fprintln(os.Stderr, "       transcode -from <scheme> -check [-in file]")
	fmt.Fprintln(os.Stderr, "       transcode -i  (interactive mode)")
	return 2
}

// run copies in to out through a scheme transformer and reports whether the
// input was well-formed. In check mode only the verdict is written.
func run(cfg config, in io.Reader, out io.Writer) (bool, error) {
	var opts []scheme.Option
	if cfg.strict {
		opts = append(opts, scheme.Strict())
	}
	if cfg.writeBOM && !cfg.check {
		opts = append(opts, scheme.WriteBOM())
	}
	if cfg.skipBOM {
		opts = append(opts, scheme.SkipBOM())
	}

	to := cfg.to
	if cfg.check {
		to = scheme.UTF8
	}
	tr := scheme.NewTransformer(cfg.from, to, opts...)
	r := transform.NewReader(in, tr)

	if cfg.check {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return false, err
		}
		verdict := "well-formed"
		if !tr.WellFormed() {
			verdict = "ill-formed"
		}
		_, err := fmt.Fprintln(out, verdict)
		return tr.WellFormed(), err
	}

	w := out
	var dumper io.WriteCloser
	if cfg.hex {
		dumper = hex.Dumper(out)
		w = dumper
	}
	if _, err := io.Copy(w, r); err != nil {
		return false, err
	}
	if dumper != nil {
		if err := dumper.Close(); err != nil {
			return false, err
		}
	}
	return tr.WellFormed(), nil
}
