// Command vibeui opens a page with positioned tooltips and popovers in a
// playground window, or lays it out headless and reports where each
// widget was placed.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/network"
	"github.com/chrisuehlinger/vibeui/ui"
)

//go:embed demo.html
var demoPage string

func main() {
	headless := flag.Bool("headless", false, "lay out the page without a window and print widget placements")
	tree := flag.Bool("tree", false, "with -headless, dump the document tree")
	pngOut := flag.String("png", "", "with -headless, paint the page to this PNG file")
	width := flag.Float64("width", 1024, "viewport width")
	height := flag.Float64("height", 768, "viewport height")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vibeui [flags] [file-or-URL]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	open := func() (*ui.Session, error) {
		if flag.NArg() == 0 {
			return ui.OpenMarkup(demoPage, *width, *height, nil)
		}
		client, err := network.NewClient()
		if err != nil {
			return nil, err
		}
		return ui.Open(context.Background(), network.NewLoader(client), flag.Arg(0), *width, *height)
	}

	if !*headless {
		ui.NewPlayground("vibeui", open).Run()
		return
	}
	if err := runHeadless(open, *tree, *pngOut); err != nil {
		fmt.Fprintf(os.Stderr, "vibeui: %v\n", err)
		os.Exit(1)
	}
}

func runHeadless(open ui.Opener, tree bool, pngOut string) error {
	s, err := open()
	if err != nil {
		return err
	}
	defer s.Close()
	for _, err := range s.Errors {
		fmt.Fprintf(os.Stderr, "script error: %v\n", err)
	}
	for _, line := range s.Runtime.Logs() {
		fmt.Println(line)
	}

	if err := s.ShowAll(); err != nil {
		fmt.Fprintf(os.Stderr, "show: %v\n", err)
	}
	for i := range s.Widgets {
		fmt.Println(ui.Describe(s, i))
	}
	if tree {
		fmt.Print(dom.Dump(s.Document().AsNode()))
	}
	if pngOut == "" {
		return nil
	}
	f, err := os.Create(pngOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, s.Paint().Image())
}
