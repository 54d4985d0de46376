// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package diagnostics

import (
	"net/http"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestWithProfiling_EnablesAllFacilities(t *testing.T) {
	dir := t.TempDir()
	called := false
	action := func(ctx *cli.Context) error {
		// profile and trace files created
		require.FileExists(t, path.Join(dir, "cpu.profile"))
		require.FileExists(t, path.Join(dir, "trace.out"))

		// server started
		var statusCode int
		var lastErr error
		wait := 100 * time.Millisecond
		for i := 0; statusCode != http.StatusOK && i < 10; i++ {
			resp, err := http.Get("http://localhost:6061/debug/pprof/")
			lastErr = err
			if resp != nil {
				statusCode = resp.StatusCode
			}
			time.Sleep(wait)
			wait *= 2
		}
		require.NoError(t, lastErr)
		require.Equal(t, http.StatusOK, statusCode)

		called = true
		return nil
	}

	portFlag := cli.IntFlag{Name: "diagnostic-port"}
	cpuFlag := cli.StringFlag{Name: "cpuprofile"}
	traceFlag := cli.StringFlag{Name: "tracefile"}

	app := &cli.App{
		Action: WithProfiling(action, &portFlag, &cpuFlag, &traceFlag),
		Flags:  []cli.Flag{&portFlag, &cpuFlag, &traceFlag},
	}

	err := app.Run([]string{
		"cmd",
		"--diagnostic-port", "6061",
		"--cpuprofile", path.Join(dir, "cpu.profile"),
		"--tracefile", path.Join(dir, "trace.out"),
	})
	require.NoError(t, err)
	require.True(t, called, "action should be called")
}

func TestWithProfiling_DisabledWithoutFlags(t *testing.T) {
	called := false
	action := func(ctx *cli.Context) error {
		called = true
		return nil
	}

	portFlag := cli.IntFlag{Name: "diagnostic-port"}
	cpuFlag := cli.StringFlag{Name: "cpuprofile"}
	traceFlag := cli.StringFlag{Name: "tracefile"}

	app := &cli.App{
		Action: WithProfiling(action, &portFlag, &cpuFlag, &traceFlag),
		Flags:  []cli.Flag{&portFlag, &cpuFlag, &traceFlag},
	}

	require.NoError(t, app.Run([]string{"cmd"}))
	require.True(t, called, "action should be called")
}

func TestWithProfiling_ReportsUnwritableProfileFile(t *testing.T) {
	action := func(ctx *cli.Context) error { return nil }

	portFlag := cli.IntFlag{Name: "diagnostic-port"}
	cpuFlag := cli.StringFlag{Name: "cpuprofile"}
	traceFlag := cli.StringFlag{Name: "tracefile"}

	app := &cli.App{
		Action: WithProfiling(action, &portFlag, &cpuFlag, &traceFlag),
		Flags:  []cli.Flag{&portFlag, &cpuFlag, &traceFlag},
	}

	err := app.Run([]string{"cmd", "--cpuprofile", "/path/does/not/exist/cpu.profile"})
	require.ErrorContains(t, err, "failed to create CPU profile file")
}
