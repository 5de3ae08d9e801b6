// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import "os"

// Run holds the [run] configuration.
var Run = struct {
	DryRun bool
}{}

func newRunService() {
	Run.DryRun = Cfg.Section("run").Key("DRY_RUN").MustBool(false)

	if v, ok := os.LookupEnv("SAWMILL_DRY_RUN"); ok {
		Run.DryRun = envBool(v, Run.DryRun)
	}
}
