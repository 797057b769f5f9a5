// Copyright (c) 2026 The mssb-asset-recovery authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of mssb-asset-recovery.
//
// mssb-asset-recovery is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mssb-asset-recovery is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mssb-asset-recovery.  If not, see <https://www.gnu.org/licenses/>.

// Command mssbrecover recovers GameCube baseball-disc assets that a lossy
// build process scattered across a main executable, a relocatable code
// archive, and a data archive.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/roeming/mssb-asset-recovery/filecache"
	"github.com/roeming/mssb-asset-recovery/recovery"
	"github.com/roeming/mssb-asset-recovery/runner"
)

var (
	versionFlag = flag.String("version", "", "release version to recover (US, JP, EU, DEMO, FS03, or ALL) (required)")
	rootFlag    = flag.String("archive-root", ".", "directory containing data/ and outputs/")
	force       = flag.Bool("force", false, "re-extract even if outputs/<VERSION>/FoundFiles.json already exists")
	jsonOutput  = flag.Bool("json", false, "print the manifest to stdout in addition to writing FoundFiles.json")
	bundle      = flag.Bool("chd", false, "also bundle outputs/<VERSION> into a .tar.xz")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s extract -version V [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recovers GameCube baseball-disc assets for one or all release versions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s extract -version US\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s extract -version ALL -archive-root ./mssb -json\n", os.Args[0])
	}

	if len(os.Args) < 2 || os.Args[1] != "extract" {
		flag.Usage()
		os.Exit(1)
	}

	// Parse flags after the "extract" subcommand token.
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if *versionFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: -version is required\n")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	versions, err := selectVersions(*versionFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cache := filecache.New(filecache.DefaultBudget)
	logger := stderrLogger{}

	exitCode := 0
	for _, v := range versions {
		manifest, err := runner.Run(ctx, *rootFlag, v, runner.Options{
			Force:    *force,
			Cache:    cache,
			Logger:   logger,
			Progress: recovery.NopProgress,
			Bundle:   *bundle,
		})

		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintf(os.Stderr, "cancelled during %s\n", v)
			os.Exit(2)
		case errors.Is(err, runner.ErrAlreadyExtracted):
			fmt.Fprintf(os.Stderr, "%s already extracted, skipping (use -force to re-extract)\n", v)
			continue
		case err != nil:
			fmt.Fprintf(os.Stderr, "%s: %v\n", v, err)
			exitCode = 1
			continue
		}

		if *jsonOutput {
			printManifest(v, manifest)
		} else {
			printSummary(v, manifest)
		}
	}

	os.Exit(exitCode)
}

// selectVersions expands "ALL" to runner.Versions, otherwise validates v is
// one of them.
func selectVersions(v string) ([]string, error) {
	if strings.EqualFold(v, "ALL") {
		return runner.Versions, nil
	}
	for _, known := range runner.Versions {
		if v == known {
			return []string{v}, nil
		}
	}
	return nil, fmt.Errorf("unknown version %q (want one of %v, or ALL)", v, runner.Versions)
}

func printManifest(version string, m *runner.Manifest) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Printf("%s:\n", version)
	if err := enc.Encode(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

func printSummary(version string, m *runner.Manifest) {
	fmt.Printf("%s: %d rels, %d raw, %d referenced, %d AdGCForms, %d unreferenced\n",
		version, len(m.Rels), len(m.Raw), len(m.Referenced), len(m.AdGC), len(m.Unreferenced))
}

// stderrLogger writes progress messages to stderr so stdout stays clean for
// -json manifest output.
type stderrLogger struct{}

func (stderrLogger) Log(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
