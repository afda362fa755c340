// FILE: strata/file_test.go
package strata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONFile(t *testing.T) {
	path := writeFile(t, "app.json", `{
		"name": "svc",
		"logging": {"level": "warn"},
		"ports": [80, 443],
		"ratio": 0.25,
		"empty": {}
	}`)

	root := NewBuilder().AddJSONFile(path).MustBuild()

	expect := map[string]string{
		"Name":          "svc",
		"Logging:Level": "warn",
		"Ports:0":       "80",
		"Ports:1":       "443",
		"Ratio":         "0.25",
		"Empty":         "",
	}
	for key, want := range expect {
		v, ok := root.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}

	t.Run("keys are pascal-cased", func(t *testing.T) {
		children := root.Section("Logging").Children()
		require.Len(t, children, 1)
		assert.Equal(t, "Level", children[0].Key())
	})

	t.Run("top-level array is rejected", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `[1, 2]`)
		_, err := NewBuilder().AddJSONFile(bad).Build()
		assert.Error(t, err)
	})

	t.Run("malformed content is a parse error", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"a":`)
		_, err := NewBuilder().AddJSONFile(bad).Build()
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrFileNotFound)
	})
}

func TestTOMLFile(t *testing.T) {
	path := writeFile(t, "app.toml", `
name = "svc"
ports = [8080, 8081]

[server]
host = "localhost"
port = 9090

[[accounts]]
user = "a"

[[accounts]]
user = "b"
`)

	root := NewBuilder().AddTOMLFile(path).MustBuild()

	expect := map[string]string{
		"name":            "svc",
		"ports:0":         "8080",
		"ports:1":         "8081",
		"server:host":     "localhost",
		"server:port":     "9090",
		"accounts:0:user": "a",
		"accounts:1:user": "b",
	}
	for key, want := range expect {
		v, ok := root.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestYAMLFile(t *testing.T) {
	path := writeFile(t, "app.yaml", `
server:
  host: localhost
  ports:
    - 1
    - 2
debug: true
`)

	root := NewBuilder().AddYAMLFile(path).MustBuild()

	expect := map[string]string{
		"server:host":    "localhost",
		"server:ports:0": "1",
		"server:ports:1": "2",
		"debug":          "true",
	}
	for key, want := range expect {
		v, ok := root.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}

	t.Run("empty document loads as empty", func(t *testing.T) {
		empty := writeFile(t, "empty.yaml", "")
		root := NewBuilder().AddYAMLFile(empty).MustBuild()
		assert.Empty(t, root.Children())
	})
}

func TestINIFile(t *testing.T) {
	path := writeFile(t, "app.ini", `
top = 1

[database]
host = db.local
port = 5432
`)

	root := NewBuilder().AddINIFile(path).MustBuild()

	expect := map[string]string{
		"top":           "1",
		"database:host": "db.local",
		"database:port": "5432",
	}
	for key, want := range expect {
		v, ok := root.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestXMLFile(t *testing.T) {
	path := writeFile(t, "app.xml", `
<settings>
  <endpoint Name="primary" url="https://a.example"/>
  <retry>3</retry>
  <item>a</item>
  <item>b</item>
</settings>
`)

	root := NewBuilder().AddXMLFile(path).MustBuild()

	expect := map[string]string{
		"endpoint:primary:url": "https://a.example",
		"retry":                "3",
		"item:0":               "a",
		"item:1":               "b",
	}
	for key, want := range expect {
		v, ok := root.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}

	t.Run("namespaces are rejected", func(t *testing.T) {
		bad := writeFile(t, "ns.xml", `<a xmlns:x="urn:y"><x:b>1</x:b></a>`)
		_, err := NewBuilder().AddXMLFile(bad).Build()
		assert.Error(t, err)
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		bad := writeFile(t, "dup.xml", `<a><b c="1"><c>2</c></b></a>`)
		_, err := NewBuilder().AddXMLFile(bad).Build()
		assert.Error(t, err)
	})
}

func TestFileOptional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	t.Run("optional missing file loads empty", func(t *testing.T) {
		root, err := NewBuilder().Add(NewJSONFile(missing).WithOptional()).Build()
		require.NoError(t, err)
		_, ok := root.Get("anything")
		assert.False(t, ok)
	})

	t.Run("required missing file fails with ErrFileNotFound", func(t *testing.T) {
		_, err := NewBuilder().AddJSONFile(missing).Build()
		require.Error(t, err)

		var re *ReloadError
		require.ErrorAs(t, err, &re)
		require.Len(t, re.Failures, 1)
		assert.ErrorIs(t, re.Failures[0].Err, ErrFileNotFound)

		var le *LoadError
		require.ErrorAs(t, re.Failures[0].Err, &le)
		assert.Equal(t, missing, le.Path)
	})
}
