package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"pkt.systems/version"

	"github.com/markwal/encrusted/screen"
)

const defaultWidth = 72

func init() {
	version.SetDefaultModule("github.com/markwal/encrusted")
}

func main() {
	var (
		widthFlag   int
		moreContext int
		boring      bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("pager", pflag.ExitOnError)
	flags.IntVarP(&widthFlag, "width", "w", defaultWidth, "Content width in columns (0 uses the full terminal width)")
	flags.IntVar(&moreContext, "more-context", 1, "Lines kept above fresh output at the [more] prompt")
	flags.BoolVarP(&boring, "boring", "b", false, "Disable styling")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: pager [flags] [files...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no file is provided, text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}

	styles := screen.DefaultStyles()
	if boring {
		styles = screen.PlainStyles()
	}
	ui := screen.NewUI(screen.UIConfig{
		Output:      os.Stdout,
		Input:       os.Stdin,
		Width:       widthFlag,
		MoreContext: moreContext,
		Styles:      &styles,
	})
	defer ui.Close()

	// Resizes are applied between lines so the UI stays single-threaded.
	resized := make(chan os.Signal, 1)
	signal.Notify(resized, syscall.SIGWINCH)

	args := flags.Args()
	if len(args) == 0 {
		ui.SetStatusBar("(stdin)", "pager")
		if err := page(ui, os.Stdin, resized); err != nil {
			fmt.Fprintf(os.Stderr, "pager: %v\n", err)
			os.Exit(1)
		}
		return
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		ui.SetStatusBar(path, "pager")
		err = page(ui, f, resized)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pager: %v\n", err)
			os.Exit(1)
		}
	}
}

func page(ui *screen.UI, r io.Reader, resized <-chan os.Signal) error {
	br := bufio.NewReader(r)
	for {
		select {
		case <-resized:
			ui.Resize()
		default:
		}
		line, err := br.ReadString('\n')
		if line != "" {
			ui.Print(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}
