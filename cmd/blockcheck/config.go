// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/panda-suite/bcash/chaincfg"
)

// config defines the configuration options for blockcheck.
type config struct {
	Type       string `short:"t" long:"type" description:"encoding of the input (one of: block, merkleblock, cmpctblock)"`
	InFile     string `short:"i" long:"infile" description:"read the hex encoded input from the given file instead of the first argument"`
	TestNet    bool   `long:"testnet" description:"use the test network parameters"`
	RegNet     bool   `long:"regnet" description:"use the regression test network parameters"`
	NoPoW      bool   `long:"nopow" description:"skip the proof of work check"`
	LogFile    string `long:"logfile" description:"also write log output to the given file with rotation"`
	DebugLevel string `short:"d" long:"debuglevel" description:"logging level (one of: trace, debug, info, warn, error, critical)"`
}

// chainParams returns the chain parameters selected by the network options.
func (cfg *config) chainParams() *chaincfg.Params {
	switch {
	case cfg.TestNet:
		return chaincfg.TestNetParams()
	case cfg.RegNet:
		return chaincfg.RegNetParams()
	default:
		return chaincfg.MainNetParams()
	}
}

// loadConfig initializes and parses the config using command line options.
// It returns the parsed config along with any remaining command line
// arguments.
func loadConfig() (*config, []string, error) {
	cfg := config{
		Type:       "block",
		DebugLevel: "info",
	}

	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] hexblock"
	args, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if cfg.TestNet && cfg.RegNet {
		return nil, nil, fmt.Errorf("the testnet and regnet options may " +
			"not be used together")
	}

	switch cfg.Type {
	case "block", "merkleblock", "cmpctblock":
	default:
		return nil, nil, fmt.Errorf("unknown input type %q", cfg.Type)
	}

	if !validLogLevel(cfg.DebugLevel) {
		return nil, nil, fmt.Errorf("invalid debug level %q", cfg.DebugLevel)
	}

	return &cfg, args, nil
}
