// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package diagnostics wires optional runtime diagnostics into CLI commands:
// CPU profiling, execution tracing, and a pprof server for live inspection.
package diagnostics

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers the /debug/pprof handlers served below
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/urfave/cli/v2"
)

// WithProfiling wraps a CLI action with optional performance diagnostics.
// The serverPortFlag enables a pprof diagnostic server on the given port,
// cpuProfileFlag names the file CPU profiles are written to, and
// traceFileFlag names the file execution traces are written to. Each
// facility is disabled when its flag is unset or empty.
func WithProfiling(action cli.ActionFunc, serverPortFlag *cli.IntFlag, cpuProfileFlag, traceFileFlag *cli.StringFlag) cli.ActionFunc {
	return func(context *cli.Context) error {
		startDiagnosticServer(context.Int(serverPortFlag.Names()[0]))

		if file := strings.TrimSpace(context.String(cpuProfileFlag.Names()[0])); file != "" {
			stop, err := profileCPU(file)
			if err != nil {
				return err
			}
			defer stop()
		}

		if file := strings.TrimSpace(context.String(traceFileFlag.Names()[0])); file != "" {
			stop, err := traceExecution(file)
			if err != nil {
				return err
			}
			defer stop()
		}

		return action(context)
	}
}

// startDiagnosticServer hosts the default pprof handlers on the given local
// port. Ports outside the valid range disable the server. Block and mutex
// sampling is switched to full resolution while the server runs, which may
// slow the profiled command down.
func startDiagnosticServer(port int) {
	if port <= 0 || port >= (1<<16) {
		return
	}
	fmt.Printf("Starting diagnostic server at http://localhost:%d\n", port)
	fmt.Printf("(see https://pkg.go.dev/net/http/pprof#hdr-Usage_examples for usage examples)\n")
	fmt.Printf("Block and mutex sampling rate is set to 100%% for diagnostics, which may impact overall performance\n")
	go func() {
		log.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", port), nil))
	}()
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)
}

// profileCPU starts writing a CPU profile to the given file and returns the
// function finishing the profile.
func profileCPU(filename string) (stop func(), err error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profiling: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

// traceExecution starts writing an execution trace to the given file and
// returns the function finishing the trace.
func traceExecution(filename string) (stop func(), err error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start execution tracing: %w", err)
	}
	return func() {
		trace.Stop()
		f.Close()
	}, nil
}
