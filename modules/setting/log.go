// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"os"

	"code.sawmill.io/sawmill/modules/log"
)

// LogFile holds the [log.file] configuration, one optional file
// destination wired in from the configuration file. Further
// destinations are added through the API or the CLI flags.
type LogFile struct {
	Path       string
	Levels     []string
	Colorize   bool
	Rotate     bool
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// Log holds the [log] configuration.
var Log = struct {
	Level           string
	TimestampFormat string
	ForceColor      bool
	File            LogFile
}{}

func newLogService() {
	sec := Cfg.Section("log")
	Log.Level = sec.Key("LEVEL").MustString("")
	Log.TimestampFormat = sec.Key("TIMESTAMP_FORMAT").MustString("")
	Log.ForceColor = sec.Key("FORCE_COLOR").MustBool(false)

	fileSec := Cfg.Section("log.file")
	Log.File.Path = fileSec.Key("PATH").MustString("")
	Log.File.Levels = fileSec.Key("LEVELS").Strings(",")
	Log.File.Colorize = fileSec.Key("COLORIZE").MustBool(false)
	Log.File.Rotate = fileSec.Key("ROTATE").MustBool(false)
	Log.File.MaxSizeMB = fileSec.Key("MAX_SIZE_MB").MustInt(128)
	Log.File.MaxBackups = fileSec.Key("MAX_BACKUPS").MustInt(9)
	Log.File.Compress = fileSec.Key("COMPRESS").MustBool(false)

	if v, ok := os.LookupEnv("SAWMILL_LOG_LEVEL"); ok {
		Log.Level = v
	}
	if v, ok := os.LookupEnv("SAWMILL_LOG_TIMESTAMP_FORMAT"); ok {
		Log.TimestampFormat = v
	}
	if v, ok := os.LookupEnv("SAWMILL_LOG_FORCE_COLOR"); ok {
		Log.ForceColor = envBool(v, Log.ForceColor)
	}
}

// InitLogger applies the [log] configuration to the default logger. An
// empty LEVEL keeps the logger's own default filter. An unusable
// [log.file] PATH is a configuration error and goes through the fatal
// path.
func InitLogger() {
	l := log.Default()
	if Log.Level != "" {
		l.SetLevel(log.LevelFromString(Log.Level))
	}
	l.SetTimestampFormat(Log.TimestampFormat)
	l.SetForceColor(Log.ForceColor)

	if Log.File.Path != "" {
		err := l.AddFileWriter(Log.File.Path, log.FileWriterMode{
			Levels:     Log.File.Levels,
			Colorize:   Log.File.Colorize,
			Rotate:     Log.File.Rotate,
			MaxSizeMB:  Log.File.MaxSizeMB,
			MaxBackups: Log.File.MaxBackups,
			Compress:   Log.File.Compress,
		})
		if err != nil {
			log.Fatal("Failed to add log file: %v", err)
		}
	}
}
