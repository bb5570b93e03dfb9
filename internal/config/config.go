//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package config holds globally available configuration variables which are
// either set by defaults, read from a config file, or overridden by command
// line options.
package config

import (
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frankkopp/perft960/internal/util"
)

// ConfFile holds the path to the config file, relative to the working
// directory unless overridden on the command line.
var ConfFile = "./config.toml"

// Settings is the global configuration, read from ConfFile and overlaid
// with command-line overrides.
var Settings = conf{
	Log: logConfiguration{
		Level:     5,
		TestLevel: 5,
	},
	Perft: perftConfiguration{
		DefaultHashSizeMB: 64,
		Workers:           runtime.NumCPU(),
	},
}

var initialized = false

type conf struct {
	Log   logConfiguration
	Perft perftConfiguration
}

// logConfiguration controls the op/go-logging backend created by
// internal/logging. Level and TestLevel are go-logging levels: 0=CRITICAL
// .. 5=DEBUG.
type logConfiguration struct {
	Level     int
	TestLevel int
}

// perftConfiguration controls the perft transposition cache size and the
// bench suite's worker concurrency.
type perftConfiguration struct {
	DefaultHashSizeMB int
	Workers           int
}

// Setup reads the config file (if found) over the compiled-in defaults.
// Missing or malformed config files are not fatal: the defaults stand and
// a message is logged.
func Setup() {
	if initialized {
		return
	}
	path, err := util.ResolveFile(ConfFile)
	if err != nil {
		log.Println("Config file not found, using defaults:", err)
	} else if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("Config file could not be parsed, using defaults:", err)
	}
	initialized = true
}

// String renders the current configuration using reflection, one field per
// line.
func (c *conf) String() string {
	var b strings.Builder
	b.WriteString("Log Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Log).Elem())
	b.WriteString("\nPerft Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Perft).Elem())
	return b.String()
}

// LogLevels maps the command-line "-loglvl" spelling to the go-logging
// numeric level Settings.Log.Level / Settings.Log.TestLevel expect.
var LogLevels = map[string]int{
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}

func writeFields(b *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		fmt.Fprintf(b, "%-2d: %-22s %-6s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface())
	}
}
