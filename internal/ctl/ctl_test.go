package ctl

import (
	"bytes"
	"context"
	"testing"

	"github.com/jroosing/zoneinv/internal/api/apitest"
	"github.com/jroosing/zoneinv/internal/client"
	"github.com/jroosing/zoneinv/internal/inventory"
	"github.com/jroosing/zoneinv/internal/logging"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	base *Command
	ui   *cli.MockUi
	fs   afero.Fs
	api  *client.Client
	url  string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	srv := apitest.Start(t, "admin", "secret")
	t.Setenv("API_URL", srv.URL)
	t.Setenv("API_USERNAME", "admin")
	t.Setenv("API_PASSWORD", "secret")

	fs := afero.NewMemMapFs()
	ui := cli.NewMockUi()
	base := &Command{
		Log: logging.Discard(),
		UI:  ui,
		NewClient: func(cfg client.Config) (*client.Client, error) {
			cfg.Fs = fs
			return client.New(cfg)
		},
	}
	api, err := client.New(client.Config{BaseURL: srv.URL, Username: "admin", Password: "secret", Logger: logging.Discard()})
	require.NoError(t, err)
	return &testCLI{base: base, ui: ui, fs: fs, api: api, url: srv.URL}
}

func TestImportCommand(t *testing.T) {
	tc := newTestCLI(t)
	require.NoError(t, afero.WriteFile(tc.fs, "/seed.json", []byte(`{"zones":[
		{"name":"QA","environments":[{"name":"dev","servers":[
			{"fqdn":"web1.qa","ip":"10.0.0.1","status":"available","server_type":"web"}]}]}]}`), 0o644))

	code := (&ImportCommand{Command: tc.base}).Run([]string{"/seed.json"})
	assert.Equal(t, 0, code, tc.ui.ErrorWriter.String())

	out := tc.ui.OutputWriter.String()
	assert.Contains(t, out, "zone QA: ok")
	assert.Contains(t, out, "  environment dev: ok")
	assert.Contains(t, out, "    server web1.qa: ok")
	assert.Contains(t, out, "import complete")
}

func TestImportCommand_PartialFailure(t *testing.T) {
	tc := newTestCLI(t)
	require.NoError(t, tc.api.CreateZone(context.Background(), inventory.Zone{Name: "QA"}))
	require.NoError(t, afero.WriteFile(tc.fs, "/seed.json", []byte(`{"zones":[{"name":"QA"},{"name":"Prod"}]}`), 0o644))

	code := (&ImportCommand{Command: tc.base}).Run([]string{"/seed.json"})
	assert.Equal(t, 2, code)
	assert.Contains(t, tc.ui.OutputWriter.String(), "zone QA: FAILED")
	assert.Contains(t, tc.ui.OutputWriter.String(), "zone Prod: ok")
	assert.Contains(t, tc.ui.ErrorWriter.String(), "1 item(s) failed")
}

func TestImportCommand_BadArgs(t *testing.T) {
	tc := newTestCLI(t)

	assert.Equal(t, 1, (&ImportCommand{Command: tc.base}).Run(nil))
	assert.Contains(t, tc.ui.ErrorWriter.String(), "exactly one file")

	assert.Equal(t, 1, (&ImportCommand{Command: tc.base}).Run([]string{"/missing.json"}))
	assert.Contains(t, tc.ui.ErrorWriter.String(), "import failed")
}

func TestExportCommand(t *testing.T) {
	tc := newTestCLI(t)
	require.NoError(t, tc.api.CreateZone(context.Background(), inventory.Zone{Name: "QA"}))

	code := (&ExportCommand{Command: tc.base}).Run([]string{"/out.json"})
	require.Equal(t, 0, code, tc.ui.ErrorWriter.String())
	assert.Contains(t, tc.ui.OutputWriter.String(), "exported 1 zone(s)")

	data, err := afero.ReadFile(tc.fs, "/out.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "QA"`)
}

func TestZonesAndCheckCommands(t *testing.T) {
	tc := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, tc.api.CreateZone(ctx, inventory.Zone{Name: "QA"}))
	require.NoError(t, tc.api.CreateEnvironment(ctx, "QA", inventory.Environment{Name: "dev"}))
	require.NoError(t, tc.api.AddServer(ctx, "QA", "dev", inventory.Server{
		FQDN: "web1.qa", IP: "10.0.0.1", Status: inventory.StatusAvailable, ServerType: "web",
	}))

	require.Equal(t, 0, (&ZonesCommand{Command: tc.base}).Run(nil))
	assert.Equal(t, "QA\n", tc.ui.OutputWriter.String())

	tc.ui.OutputWriter.Reset()
	require.Equal(t, 0, (&CheckCommand{Command: tc.base}).Run(nil))
	out := tc.ui.OutputWriter.String()
	assert.Contains(t, out, "zone QA: 1 environment(s)")
	assert.Contains(t, out, "web1.qa ip=10.0.0.1 type=web status=available")
	assert.Contains(t, out, "1 zone(s), 1 environment(s), 1 server(s)")
}

func TestClearCommand(t *testing.T) {
	tc := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, tc.api.CreateZone(ctx, inventory.Zone{Name: "a"}))
	require.NoError(t, tc.api.CreateZone(ctx, inventory.Zone{Name: "b"}))

	assert.Equal(t, 1, (&ClearCommand{Command: tc.base}).Run(nil))
	assert.Contains(t, tc.ui.ErrorWriter.String(), "-yes")

	require.Equal(t, 0, (&ClearCommand{Command: tc.base}).Run([]string{"-yes"}))
	zones, err := tc.api.ListZones(ctx)
	require.NoError(t, err)
	assert.Empty(t, zones)

	require.Equal(t, 0, (&ClearCommand{Command: tc.base}).Run([]string{"-yes"}))
	assert.Contains(t, tc.ui.OutputWriter.String(), "no zones to delete")
}

func TestConnectionFlagsOverrideEnv(t *testing.T) {
	tc := newTestCLI(t)
	t.Setenv("API_URL", "http://127.0.0.1:1")

	code := (&ZonesCommand{Command: tc.base}).Run([]string{"-url", tc.url})
	assert.Equal(t, 0, code, tc.ui.ErrorWriter.String())
}

func TestRun_HelpAndVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"zoneinvctl", "-version"}, nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), Version)

	stdout.Reset()
	stderr.Reset()
	code = run([]string{"zoneinvctl", "-help"}, nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	help := stdout.String() + stderr.String()
	for _, name := range []string{"import", "export", "check", "clear", "zones"} {
		assert.Contains(t, help, name)
	}
}

func TestFlagSetHelp(t *testing.T) {
	help := (&ClearCommand{Command: &Command{}}).Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-yes")
	assert.Contains(t, help, "-url")
}
