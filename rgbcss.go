package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dpinela/rgbcss/internal/termesc"

	"golang.org/x/crypto/ssh/terminal"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "[flags] [rgb(R, G, B)...]")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func main() {
	app := &application{stdout: os.Stdout, stderr: os.Stderr, isTerminal: terminal.IsTerminal(int(os.Stdout.Fd()))}
	flag.StringVar(&app.configPath, "config", "", "read the palette from `file` instead of rgbcss/config.toml in the user config directory")
	flag.StringVar(&app.output, "o", "", "write the stylesheet to `file` (- for standard output)")
	flag.StringVar(&app.selector, "selector", "", "use `selector` for the generated rule")
	prefix := flag.String("prefix", "", "prepend `prefix` to every custom property name")
	previewMode := flag.Bool("preview", false, "print the palette instead of writing a stylesheet")
	watchMode := flag.Bool("watch", false, "regenerate the stylesheet whenever the config file changes")
	copyName := flag.String("copy", "", "copy the color called `name` to the clipboard")
	pasteMode := flag.Bool("paste", false, "print the color on the clipboard")
	flag.Usage = usage
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "prefix" {
			app.prefix = prefix
		}
	})

	var err error
	switch {
	case flag.NArg() > 0:
		err = app.printColors(flag.Args())
	case *pasteMode:
		err = app.pasteColor()
	case *copyName != "":
		err = app.copyColor(*copyName)
	case *previewMode:
		err = app.preview()
	case *watchMode:
		if err = app.generate(); err != nil {
			app.status(err.Error(), termesc.StyleBold, termesc.ColorRed)
		}
		stop := make(chan struct{})
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		go func() {
			<-interrupts
			close(stop)
		}()
		err = app.watch(stop)
	default:
		err = app.generate()
	}
	if err != nil {
		fatal(err)
	}
}
