// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command libractl runs maintenance tasks against a Libra database:
// imports, cover downloads, migrations and owner password hashing.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

const version = "0.1.0"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
