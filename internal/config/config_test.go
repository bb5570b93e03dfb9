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

package config

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// make tests run in the project's root directory.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

func TestSetupDefaults(t *testing.T) {
	initialized = false
	ConfFile = "./no-such-config.toml"
	Setup()
	assert.Equal(t, 5, Settings.Log.Level)
	assert.Greater(t, Settings.Perft.DefaultHashSizeMB, 0)
	assert.Greater(t, Settings.Perft.Workers, 0)
}

func TestSetupIdempotent(t *testing.T) {
	initialized = false
	Setup()
	Settings.Log.Level = 1
	Setup()
	assert.Equal(t, 1, Settings.Log.Level, "a second Setup call must not reset already-initialized settings")
}

func TestString(t *testing.T) {
	initialized = false
	Setup()
	s := Settings.String()
	assert.Contains(t, s, "Log Config")
	assert.Contains(t, s, "Perft Config")
}
