package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"companydir/internal"
	"companydir/internal/config"
	"companydir/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = internal.NewLogger(internal.LogLevelError)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_FILE", "DATA_SHEET", "CATEGORY_COLUMN", "HOST", "PORT", "GIN_MODE",
		"SHUTDOWN_TIMEOUT", "PAGE_TITLE", "PAGE_INTRO", "PAGE_SIZE",
		"PPROF_ENABLED", "PPROF_PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags(args))
	return loadConfig(cmd, opts)
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return fmt.Sprint(port)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_FILE", "from-env.xlsx")
	t.Setenv("PORT", "9000")
	t.Setenv("PAGE_TITLE", "Env Title")

	cfg, err := parse(t, "--file", "from-flag.csv", "-c", "Sector", "--page-size", "20", "--pprof")
	require.NoError(t, err)

	assert.Equal(t, "from-flag.csv", cfg.Data.File)
	assert.Equal(t, "Sector", cfg.Data.CategoryColumn)
	assert.Equal(t, 20, cfg.Page.PageSize)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "Env Title", cfg.Page.Title)
}

func TestLoadConfigInvalidFlag(t *testing.T) {
	clearEnv(t)

	_, err := parse(t, "--port", "0")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadConfigEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PAGE_TITLE")

	envFile := filepath.Join(t.TempDir(), "directory.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PAGE_TITLE=Syrian Companies Directory\n"), 0o600))

	cfg, err := parse(t, "--env-file", envFile)
	require.NoError(t, err)
	assert.Equal(t, "Syrian Companies Directory", cfg.Page.Title)
}

func TestLoadConfigMissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := parse(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestBuildFailsFastOnSchemaError(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "--file", writeCSV(t, "Sector,Name\nFood,Acme\n"))
	require.NoError(t, err)

	srv, err := build(cfg, quietLogger)
	require.Error(t, err)
	assert.Nil(t, srv)
	assert.Equal(t, errors.CodeSchemaError, errors.GetCode(err))
}

func TestBuildFailsFastOnMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "--file", filepath.Join(t.TempDir(), "Job1.xlsx"))
	require.NoError(t, err)

	_, err = build(cfg, quietLogger)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestBuild(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "--file", writeCSV(t, "Category,Name\nFood,Acme\n,Bad\nRetail,Corp\n"))
	require.NoError(t, err)

	srv, err := build(cfg, quietLogger)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Records())
	assert.Equal(t, 2, srv.Categories())
	assert.Equal(t, 1, srv.Dropped())
}

func TestRootCommandReturnsLoadError(t *testing.T) {
	clearEnv(t)
	port := freePort(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--file", filepath.Join(t.TempDir(), "missing.csv"), "--port", port, "--log-level", "ERROR"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))

	// nothing was bound
	l, err := net.Listen("tcp", "127.0.0.1:"+port)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestServeUntilCancelled(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "--file", writeCSV(t, "Category,Name\nFood,Acme\n"), "--port", freePort(t))
	require.NoError(t, err)
	srv, err := build(cfg, quietLogger)
	require.NoError(t, err)

	profilingPort := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, time.Second, quietLogger,
			newWebServer(cfg.Server.Addr(), srv.Handler()),
			newProfilingServer("127.0.0.1", profilingPort, srv, quietLogger),
		)
	}()

	waitFor(t, "http://"+cfg.Server.Addr()+"/?category=Food")
	waitFor(t, "http://127.0.0.1:"+profilingPort+"/healthz")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	err = serve(context.Background(), time.Second, quietLogger, newWebServer(l.Addr().String(), http.NotFoundHandler()))
	assert.Error(t, err)
}

func waitFor(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("%s did not become ready", url)
}

func TestListCategories(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "Category,Name\nRetail,Corp\nFood,Acme\n,Bad\nFood,Best\n")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--file", path, "--log-level", "ERROR"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Food")
	assert.Contains(t, text, "Retail")
	assert.NotContains(t, text, "Bad")
	assert.Less(t, strings.Index(text, "Food"), strings.Index(text, "Retail"))
}

func TestListOneCategory(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "Category,Name,City\nRetail,Corp,Homs\nFood,Acme,Aleppo\nFood,Best,Damascus\n")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "Food", "-f", path, "--log-level", "ERROR"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Acme")
	assert.Contains(t, text, "Damascus")
	assert.NotContains(t, text, "Corp")
	assert.Contains(t, text, "2 records")
}

func TestListUnknownCategory(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "Category,Name\nFood,Acme\n")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "Mining", "-f", path, "--log-level", "ERROR"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "0 records")
}

func TestListReturnsLoadError(t *testing.T) {
	clearEnv(t)
	path := writeCSV(t, "Sector,Name\nFood,Acme\n")

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"list", "-f", path})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaError, errors.GetCode(err))
}
