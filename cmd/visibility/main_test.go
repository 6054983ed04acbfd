package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/alecthomas/kingpin.v2"
)

const squareScene = `50 50

100 100
200 100
200 200
100 200
`

func writeScene(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func parseOptions(t *testing.T, args ...string) options {
	app := kingpin.New("visibility", "")
	var opts options
	opts.register(app)
	_, err := app.Parse(args)
	require.NoError(t, err)
	return opts
}

func TestRun(t *testing.T) {
	path := writeScene(t, squareScene)

	t.Run("prints edges", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(parseOptions(t, "--no-color", path), &out))
		assert.Contains(t, out.String(), "visible (100,100) -> (200,100)")
		assert.Contains(t, out.String(), "8 edges, 2 visible")
	})

	t.Run("border mode", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(parseOptions(t, "--no-color", "--border", path), &out))
		assert.Contains(t, out.String(), "10 edges, 2 visible")
	})

	t.Run("dump", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(parseOptions(t, "--no-color", "--dump", path), &out))
		assert.Contains(t, out.String(), "Visible: (bool) true")
	})

	t.Run("png", func(t *testing.T) {
		png := filepath.Join(t.TempDir(), "out.png")
		var out bytes.Buffer
		require.NoError(t, run(parseOptions(t, "--no-color", "--png", png, path), &out))
		info, err := os.Stat(png)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	})

	t.Run("invalid scene", func(t *testing.T) {
		inside := writeScene(t, "150 150\n\n100 100\n200 100\n200 200\n100 200\n")
		var out bytes.Buffer
		assert.Error(t, run(parseOptions(t, inside), &out))
	})
}
