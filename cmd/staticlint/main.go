// Command staticlint bundles the analyzers this project is checked with:
// standard passes from the Go toolchain, ineffassign and nilerr, the
// project-specific noglobalcollections analyzer, and the staticcheck
// analyzers named in an optional staticlint.json next to the binary.
//
// Usage:
//
//	staticlint ./...
package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"honnef.co/go/tools/staticcheck"

	"github.com/patric-chuzhbe/bookshelf/cmd/staticlint/noglobalcollections"
)

// ConfigFile lists the staticcheck analyzers to enable. Without it every
// SA analyzer runs.
const ConfigFile = `staticlint.json`

// ConfigData describes the structure of the configuration file, e.g.
// {"Staticcheck": ["SA1000", "SA4006"]}.
type ConfigData struct {
	Staticcheck []string
}

func readConfig() (ConfigData, error) {
	var cfg ConfigData

	appfile, err := os.Executable()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(appfile), ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)

	return cfg, err
}

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("failed to read %s: %v", ConfigFile, err)
	}

	myChecks := []*analysis.Analyzer{
		copylock.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noglobalcollections.Analyzer,
	}

	enabled := make(map[string]bool)
	for _, name := range cfg.Staticcheck {
		enabled[name] = true
	}

	for _, v := range staticcheck.Analyzers {
		name := v.Analyzer.Name
		if enabled[name] || (len(enabled) == 0 && strings.HasPrefix(name, "SA")) {
			myChecks = append(myChecks, v.Analyzer)
		}
	}

	multichecker.Main(myChecks...)
}
