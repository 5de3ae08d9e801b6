// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"os"
	"path/filepath"
	"strconv"

	"code.sawmill.io/sawmill/modules/log"

	ini "gopkg.in/ini.v1"
)

var (
	// AppVer is the version of the running binary, set by main.
	AppVer string

	// CustomConf is the path of the loaded configuration file, empty
	// when running on defaults.
	CustomConf string

	// Cfg is the loaded configuration file.
	Cfg *ini.File
)

// Init locates and loads the configuration file and applies every
// section. customConf comes from the --config flag; an empty value
// falls back to the SAWMILL_CONFIG environment variable, then to a
// sawmill.ini next to the binary. A missing file is not an error, the
// defaults apply.
func Init(customConf string) {
	loadCfg(customConf)
	newLogService()
	newRunService()
}

func loadCfg(customConf string) {
	if customConf == "" {
		customConf = os.Getenv("SAWMILL_CONFIG")
	}
	if customConf == "" {
		if exe, err := os.Executable(); err == nil {
			defaultConf := filepath.Join(filepath.Dir(exe), "sawmill.ini")
			if _, err := os.Stat(defaultConf); err == nil {
				customConf = defaultConf
			}
		}
	}
	if customConf == "" {
		Cfg = ini.Empty()
		return
	}

	cfg, err := ini.Load(customConf)
	if err != nil {
		Cfg = ini.Empty()
		log.Fatal("Failed to parse %q: %v", customConf, err)
		return
	}
	Cfg = cfg
	CustomConf = customConf
}

// envBool parses an environment override, keeping the current value on
// junk input.
func envBool(s string, cur bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return cur
	}
	return b
}
