// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Sawmill is a CLI toolkit built around a severity-leveled,
// multi-destination log engine.
package main

import (
	"os"

	"code.sawmill.io/sawmill/cmd"
	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/setting"
)

// these flags will be set by the build flags
var (
	Version = "development" // program version for this build
	Extra   = ""            // extra version information from the build
)

func init() {
	setting.AppVer = Version
}

func main() {
	app := cmd.NewMainApp(cmd.AppVersion{Version: Version, Extra: Extra})
	_ = cmd.RunMainApp(app, os.Args...) // all errors should have been handled by the RunMainApp
	log.Default().Close()
}
