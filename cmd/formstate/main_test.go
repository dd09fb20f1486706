package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGuess(t *testing.T) {
	out, err := execute(t, &app{}, "guess", "testdata/page.json")
	require.NoError(t, err)

	assert.Contains(t, out, "key: title")
	assert.Contains(t, out, "type: number")
	assert.Contains(t, out, "type: checkbox")
}

func TestValidate_Valid(t *testing.T) {
	out, err := execute(t, &app{}, "validate", "testdata/page.json", "--config", "testdata/fields.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, `[ok] Title (title): "Home"`)
	assert.Contains(t, out, "Status: ok")
}

func TestValidate_Invalid(t *testing.T) {
	data := writeFile(t, t.TempDir(), "page.json", `{"title": "", "views": 9, "draft": true}`)

	out, err := execute(t, &app{}, "validate", data, "--config", "testdata/fields.yaml")
	require.ErrorIs(t, err, errInvalid)

	assert.Contains(t, out, "This field is required.")
	assert.Contains(t, out, "Status: invalid")
}

func TestValidate_OpenAPI(t *testing.T) {
	out, err := execute(t, &app{}, "validate", "testdata/page.json",
		"--openapi", "testdata/openapi.yaml", "--schema", "Page")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")

	data := writeFile(t, t.TempDir(), "page.json", `{"title": "Home", "views": 7}`)
	_, err = execute(t, &app{}, "validate", data, "--openapi", "testdata/openapi.yaml", "--schema", "Page")
	require.ErrorIs(t, err, errInvalid)
}

func TestValidate_FlagErrors(t *testing.T) {
	_, err := execute(t, &app{}, "validate", "testdata/page.json", "--schema", "Page")
	require.Error(t, err)

	_, err = execute(t, &app{}, "validate", "testdata/page.json",
		"--config", "testdata/fields.yaml", "--openapi", "testdata/openapi.yaml", "--schema", "Page")
	require.Error(t, err)

	_, err = execute(t, &app{}, "validate", "testdata/missing.json")
	require.Error(t, err)
}

// scriptedDriver answers inputs by prompt message and keeps defaults
// everywhere else.
type scriptedDriver struct {
	answers map[string]string
	infos   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if answer, ok := d.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	return cfg.Default, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestEdit_WritesOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")
	driver := &scriptedDriver{answers: map[string]string{"Title": "About"}}

	_, err := execute(t, &app{driver: driver}, "edit", "testdata/page.json",
		"--config", "testdata/fields.yaml", "--output", target)
	require.NoError(t, err)
	assert.Empty(t, driver.infos)

	got, err := loader.LoadData(target)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "About", "views": float64(3), "draft": false}, got)
}

func TestEdit_Stdout(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"Views": "4"}}

	out, err := execute(t, &app{driver: driver}, "edit", "testdata/page.json",
		"--config", "testdata/fields.yaml", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"views": 4`)
	assert.Contains(t, out, `"title": "Home"`)
}

func TestEdit_InPlace(t *testing.T) {
	data := writeFile(t, t.TempDir(), "page.yaml", "title: Home\n")
	driver := &scriptedDriver{answers: map[string]string{"Title": "Start"}}

	_, err := execute(t, &app{driver: driver}, "edit", data)
	require.NoError(t, err)

	got, err := loader.LoadData(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Start"}, got)
}

func newTestWatcher(t *testing.T, path string) (*watcher, *bytes.Buffer) {
	t.Helper()

	a := &app{logger: zap.NewNop(), configPath: "testdata/fields.yaml"}
	e, err := a.openEditor(context.Background(), path)
	require.NoError(t, err)
	e.ForceValidate(true)

	var out bytes.Buffer
	return &watcher{path: path, editor: e, out: &out, logger: a.logger}, &out
}

func TestWatcher_Reload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.json", `{"title": "Home", "views": 3}`)
	w, out := newTestWatcher(t, path)

	writeFile(t, filepath.Dir(path), "page.json", `{"title": "", "views": 3}`)
	require.NoError(t, w.reload())

	assert.Contains(t, out.String(), "This field is required.")
	assert.False(t, w.editor.IsValid())
	assert.Equal(t, "", w.editor.Value().(map[string]any)["title"])
}

func TestWatcher_ReloadKeepsEdits(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.json", `{"title": "Home", "views": 3}`)
	w, _ := newTestWatcher(t, path)
	require.NoError(t, w.editor.SetValue("title", "Draft"))

	writeFile(t, filepath.Dir(path), "page.json", `{"title": "Away", "views": 4}`)
	require.NoError(t, w.reload())

	got := w.editor.Value().(map[string]any)
	assert.Equal(t, "Draft", got["title"])
	assert.Equal(t, float64(4), got["views"])
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.json", `{"title": "Home", "views": 3}`)
	w, _ := newTestWatcher(t, path)

	reloaded := make(chan error, 16)
	w.onReload = func(err error) { reloaded <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	ticker := time.NewTicker(3 * watchDebounce)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

wait:
	for {
		select {
		case err := <-reloaded:
			require.NoError(t, err)
			break wait
		case <-ticker.C:
			writeFile(t, dir, "page.json", `{"title": "Away", "views": 3}`)
		case <-deadline:
			t.Fatal("watcher did not reload")
		}
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "Away", w.editor.Value().(map[string]any)["title"])
}
