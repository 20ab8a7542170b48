package main

import (
	"context"
	"io"
	"os"

	"photo-gallery/internal/cli"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			if cli.Reported(err) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	); err != nil {
		os.Exit(1)
	}
}
