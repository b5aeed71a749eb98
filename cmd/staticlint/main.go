// The staticlint command bundles the project's static analysis into one
// multichecker binary: a selection of the Go toolchain's passes, the
// ineffassign and nilerr analyzers, a configurable set of staticcheck
// analyzers, and the project's own noosexit analyzer.
//
// The staticcheck selection is read from a config.json file placed next to
// the compiled binary.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/staticcheck"

	"github.com/patric-chuzhbe/courseapi/cmd/staticlint/noosexit"
)

const configFileName = `config.json`

type configData struct {
	// Staticcheck lists the names of enabled staticcheck analyzers,
	// e.g. "SA1000", "SA4010".
	Staticcheck []string
}

func readConfig() (*configData, error) {
	executablePath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	rawConfig, err := os.ReadFile(filepath.Join(filepath.Dir(executablePath), configFileName))
	if err != nil {
		return nil, err
	}

	cfg := &configData{}
	if err := json.Unmarshal(rawConfig, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	cfg, err := readConfig()
	if err != nil {
		panic(err)
	}

	analyzers := []*analysis.Analyzer{
		copylock.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noosexit.Analyzer,
	}

	enabledStaticchecks := make(map[string]bool)
	for _, name := range cfg.Staticcheck {
		enabledStaticchecks[name] = true
	}
	for _, check := range staticcheck.Analyzers {
		if enabledStaticchecks[check.Analyzer.Name] {
			analyzers = append(analyzers, check.Analyzer)
		}
	}

	multichecker.Main(analyzers...)
}
