package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/mattn/html2toml/cmd/html2toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html lang="en">
<body>
<h1>Title</h1>
<p>one</p>
<p>two</p>
</body>
</html>
`

const want = `[html]
lang = "en"

[html.body.h1]
text = "Title"

[[html.body.p]]
text = "one"

[[html.body.p]]
text = "two"
`

// setup writes page to dir/res/index.html and returns the input and
// output paths.
func setup(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	input := filepath.Join(dir, "res", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0755))
	require.NoError(t, os.WriteFile(input, []byte(page), 0644))
	return input, filepath.Join(dir, "out.toml")
}

func run(args ...string) (int, string, string) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := main.NewMain().Run(context.Background(), args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints and writes the document", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		code, stdout, stderr := run("--input", input, "--output", output)

		assert.Equal(t, 0, code)
		assert.Equal(t, want+"\n", stdout)
		assert.Empty(t, stderr)
		b, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	})

	t.Run("overwrites an existing output", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		require.NoError(t, os.WriteFile(output, []byte("stale = true\n"), 0600))
		code, _, _ := run("-i", input, "-o", output, "--no-stdout")

		assert.Equal(t, 0, code)
		b, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
		fi, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(output))
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{"res", "out.toml"}, names)
	})

	t.Run("no stdout", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		code, stdout, _ := run("--input", input, "--output", output, "--no-stdout")

		assert.Equal(t, 0, code)
		assert.Empty(t, stdout)
		assert.FileExists(t, output)
	})

	t.Run("selector", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		code, stdout, _ := run("--input", input, "--output", output, "--select", "p")

		assert.Equal(t, 0, code)
		assert.Equal(t, "[[p]]\ntext = \"one\"\n\n[[p]]\ntext = \"two\"\n\n", stdout)
	})

	t.Run("info logging", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		code, _, stderr := run("--input", input, "--output", output, "--log-level", "info")

		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "msg=read")
		assert.Contains(t, stderr, "bytes=")
		assert.Contains(t, stderr, "msg=convert")
		assert.Contains(t, stderr, "msg=write")
		assert.Contains(t, stderr, "duration=")
	})

	t.Run("missing input exits 0 without output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		output := filepath.Join(dir, "out.toml")
		code, stdout, stderr := run("--input", filepath.Join(dir, "missing.html"), "--output", output)

		assert.Equal(t, 0, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "conversion failed")
		assert.Contains(t, stderr, "code=input")
		assert.NoFileExists(t, output)
	})

	t.Run("strict exits 1", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		code, _, stderr := run("--input", filepath.Join(dir, "missing.html"), "--output", filepath.Join(dir, "out.toml"), "--strict")

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "conversion failed")
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		input, _ := setup(t)
		output := filepath.Join(t.TempDir(), "no", "such", "dir", "out.toml")
		code, stdout, stderr := run("--input", input, "--output", output, "--strict")

		assert.Equal(t, 1, code)
		assert.Equal(t, want+"\n", stdout)
		assert.Contains(t, stderr, "code=output")
		assert.NoFileExists(t, output)
	})

	t.Run("invalid selector", func(t *testing.T) {
		t.Parallel()

		input, output := setup(t)
		code, stdout, stderr := run("--input", input, "--output", output, "--select", "p[[", "--strict")

		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "code=invalid")
		assert.NoFileExists(t, output)
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := run("--help")

		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "html2toml")
		assert.Contains(t, stdout, "--select")
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := run("--bogus")

		assert.Equal(t, 1, code)
		assert.NotEmpty(t, stderr)
	})
}

func TestMain_Run_Env(t *testing.T) {
	input, output := setup(t)
	t.Setenv("HTML2TOML_INPUT", input)
	t.Setenv("HTML2TOML_OUTPUT", output)
	t.Setenv("HTML2TOML_SELECT", "h1")

	code, stdout, _ := run()

	assert.Equal(t, 0, code)
	assert.Equal(t, "[h1]\ntext = \"Title\"\n\n", stdout)
	assert.FileExists(t, output)
}
