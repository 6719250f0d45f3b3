// Command cmppdf reports the structural differences between two PDF
// files' header/xref/trailer/indirect-object skeletons.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/emurenMRz/pdftools/document"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(stdout, "usage > cmppdf [first.pdf] [second.pdf]")
		return 1
	}

	// Loading two Documents shares no mutable state, so the two file reads
	// and full structural decodes run concurrently instead of back to back.
	// A load failure on one file does not suppress the other's table: the
	// reference prints/parses sequentially in one try/catch, so a failure
	// on the second file still leaves the first file's table already
	// printed by the time the error surfaces.
	var first, second *document.Document
	var firstErr, secondErr error
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		first, firstErr = document.Open(args[1])
		return nil
	})
	g.Go(func() error {
		second, secondErr = document.Open(args[2])
		return nil
	})
	g.Wait()

	if firstErr != nil {
		fmt.Fprintln(stderr, firstErr)
	} else {
		first.Table(stdout)
	}
	if secondErr != nil {
		fmt.Fprintln(stderr, secondErr)
	} else {
		second.Table(stdout)
	}
	if firstErr == nil && secondErr == nil {
		first.Diff(stdout, second)
	}

	return 0
}
