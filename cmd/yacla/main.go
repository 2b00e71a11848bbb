// yacla command-line entry point
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ririf4/Yacla/internal/cli"
)

func main() {
	if err := cli.NewManager().Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "yacla: %v\n", err)
		os.Exit(1)
	}
}
