package main

import (
	"fmt"
	"os"

	"github.com/megachile/datingdoc-manifest/internal/generate"
	"github.com/megachile/datingdoc-manifest/internal/status"
	"github.com/urfave/cli/v2"
)

func main() {
	quiet := &cli.BoolFlag{
		Name:  "quiet",
		Usage: "Only log errors",
	}

	app := &cli.App{
		Name:  "site-manifest",
		Usage: "Build site-manifest.json from the repository image folders, a few API calls at a time",
		Flags: []cli.Flag{quiet},
		// A bare run generates; the crawl resumes from the checkpoint in site-manifest.json.
		Action: generate.GenerateAction,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Fetch galleries and interest folders within the call budget and save the manifest",
				Action: generate.GenerateAction,
			},
			{
				Name:   "status",
				Usage:  "Show crawl progress from the local manifest without calling the API",
				Action: status.StatusAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
