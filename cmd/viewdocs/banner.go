package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/fwojciec/viewdocs"
)

type bannerInfo struct {
	Project   string
	Target    *viewdocs.Target
	Documents int
	Exclude   viewdocs.ExcludeSet
	URL       string
	Requested int
	Bound     int
}

// printBanner writes the startup summary.
func printBanner(w io.Writer, info bannerInfo) {
	label := color.New(color.Bold)

	fmt.Fprintf(w, "\n%s\n\n", color.New(color.FgCyan, color.Bold).Sprint(info.Project))
	fmt.Fprintf(w, "  %s %s\n", label.Sprint("Serving:  "), info.Target.Root)
	if info.Target.Mode == viewdocs.ModeFile {
		fmt.Fprintf(w, "  %s %s\n", label.Sprint("File:     "), info.Target.DefaultFile)
	} else {
		fmt.Fprintf(w, "  %s %d markdown files\n", label.Sprint("Documents:"), info.Documents)
		fmt.Fprintf(w, "  %s %s\n", label.Sprint("Excluding:"), info.Exclude.Summary(5))
	}
	fmt.Fprintf(w, "  %s %s\n", label.Sprint("URL:      "), color.New(color.FgGreen, color.Underline).Sprint(info.URL))
	if info.Requested != 0 && info.Bound != info.Requested {
		fmt.Fprintf(w, "  %s\n", color.New(color.FgYellow).Sprintf("Port %d was in use; using %d instead.", info.Requested, info.Bound))
	}
	fmt.Fprintf(w, "\nPress Ctrl+C to stop.\n\n")
}
