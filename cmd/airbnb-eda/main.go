// Command airbnb-eda profiles, cleans and charts Inside Airbnb datasets.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := execute(newApp(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line and closes the log file afterwards. cobra
// skips post-run hooks when a command fails, so closing happens here.
func execute(a *app, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
	}
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
