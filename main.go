// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors
//
// fanctl - TR198A ceiling fan remote control
//

package main

import (
	"os"

	"github.com/skybreeze/fanctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
