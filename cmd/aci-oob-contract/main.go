/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


// Command aci-oob-contract reconciles the contract an out-of-band management
// endpoint group provides.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/zapr"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/edudppaz/ansible-aci/pkg/logging"
)

func main() {
	o := options{}
	fs := pflag.NewFlagSet("aci-oob-contract", pflag.ExitOnError)
	o.AddFlags(fs)
	_ = fs.Parse(os.Args[1:])

	zl, err := newZap(o.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync() //nolint:errcheck // Nothing to do if we can't flush.

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := &runner{
		fs:     afero.NewOsFs(),
		lookup: os.LookupEnv,
		stdout: os.Stdout,
		log:    logging.NewLogrLogger(zapr.NewLogger(zl).WithName("aci-oob-contract")),
	}
	if err := r.Run(ctx, o); err != nil {
		zl.Error("Reconciliation failed", zap.Error(err))
		zl.Sync() //nolint:errcheck // Exiting anyway.
		cancel()
		os.Exit(1)
	}
}

func newZap(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
