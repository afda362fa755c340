// FILE: strata/binder_test.go
package strata

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Bar  string
	Baz  bool
	Doom []uint64
}

func TestReify(t *testing.T) {
	t.Run("struct with sequence", func(t *testing.T) {
		root := NewBuilder().
			AddInMemory(map[string]string{
				"Bar":    "test",
				"Baz":    "true",
				"Doom:0": "1",
				"Doom:1": "2",
				"Doom:2": "3",
			}).
			MustBuild()

		got, err := Reify[bindTarget](root)
		require.NoError(t, err)
		assert.Equal(t, bindTarget{Bar: "test", Baz: true, Doom: []uint64{1, 2, 3}}, got)
	})

	t.Run("missing required field", func(t *testing.T) {
		root := NewBuilder().
			AddInMemory(map[string]string{"Bar": "bar", "Baz": "false"}).
			MustBuild()

		_, err := Reify[bindTarget](root)
		var missing *MissingValueError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "Doom", missing.Field)
	})

	t.Run("pointer fields map absence to nil", func(t *testing.T) {
		type target struct {
			Name  string
			Extra *string
		}

		root := NewBuilder().AddInMemory(map[string]string{"Name": "svc"}).MustBuild()
		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, "svc", got.Name)
		assert.Nil(t, got.Extra)

		root = NewBuilder().
			AddInMemory(map[string]string{"Name": "svc", "Extra": "more"}).
			MustBuild()
		got, err = Reify[target](root)
		require.NoError(t, err)
		require.NotNil(t, got.Extra)
		assert.Equal(t, "more", *got.Extra)
	})

	t.Run("tag rename, skip, and optional", func(t *testing.T) {
		type target struct {
			Level   string `cfg:"verbosity"`
			Ignored string `cfg:"-"`
			Port    int    `cfg:",optional"`
		}

		root := NewBuilder().
			AddInMemory(map[string]string{"Verbosity": "debug", "Ignored": "nope"}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, target{Level: "debug"}, got)
	})

	t.Run("nested structs", func(t *testing.T) {
		type db struct {
			Host string
			Port int
		}
		type target struct {
			Name      string
			Databases []db
		}

		root := NewBuilder().
			AddInMemory(map[string]string{
				"Name":             "app",
				"Databases:0:Host": "a",
				"Databases:0:Port": "5432",
				"Databases:1:Host": "b",
				"Databases:1:Port": "5433",
			}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, target{
			Name:      "app",
			Databases: []db{{Host: "a", Port: 5432}, {Host: "b", Port: 5433}},
		}, got)
	})

	t.Run("maps keep original casing", func(t *testing.T) {
		type target struct {
			Labels map[string]string
		}

		root := NewBuilder().
			AddInMemory(map[string]string{
				"Labels:Region": "eu",
				"Labels:tier":   "web",
			}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Region": "eu", "tier": "web"}, got.Labels)
	})

	t.Run("map key casing follows the last provider", func(t *testing.T) {
		type target struct {
			Labels map[string]string
		}

		root := NewBuilder().
			AddInMemory(map[string]string{"Labels:Region": "eu"}).
			AddInMemory(map[string]string{"Labels:REGION": "us"}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"REGION": "us"}, got.Labels)
	})

	t.Run("sequence skips non-numeric siblings", func(t *testing.T) {
		type target struct {
			Doom []int
		}

		root := NewBuilder().
			AddInMemory(map[string]string{
				"Doom:0":     "1",
				"Doom:extra": "9",
				"Doom:1":     "2",
			}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got.Doom)
	})

	t.Run("sequence orders numerically", func(t *testing.T) {
		data := map[string]string{}
		for i, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
			data["Seq:"+strconv.Itoa(i)] = v
		}
		root := NewBuilder().AddInMemory(data).MustBuild()

		type target struct {
			Seq []string
		}
		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, got.Seq)
	})

	t.Run("duration and time fields", func(t *testing.T) {
		type target struct {
			Timeout time.Duration
			Start   time.Time
		}

		root := NewBuilder().
			AddInMemory(map[string]string{
				"Timeout": "1m30s",
				"Start":   "2024-05-01T10:00:00Z",
			}).
			MustBuild()

		got, err := Reify[target](root)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, got.Timeout)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got.Start)
	})

	t.Run("parse failure reports key and raw value", func(t *testing.T) {
		type target struct {
			Port int
		}

		root := NewBuilder().AddInMemory(map[string]string{"Port": "eighty"}).MustBuild()
		_, err := Reify[target](root)

		var bindErr *BindError
		require.ErrorAs(t, err, &bindErr)
		assert.Equal(t, "Port", bindErr.Key)
		assert.Equal(t, "eighty", bindErr.Value)
	})

	t.Run("reify a section", func(t *testing.T) {
		root := NewBuilder().
			AddInMemory(map[string]string{
				"App:Server:Host": "localhost",
				"App:Server:Port": "8080",
			}).
			MustBuild()

		type server struct {
			Host string
			Port int
		}
		got, err := Reify[server](root.Section("App:Server"))
		require.NoError(t, err)
		assert.Equal(t, server{Host: "localhost", Port: 8080}, got)
	})
}

func TestMustReifyPanics(t *testing.T) {
	root := NewBuilder().AddInMemory(map[string]string{"Bar": "only"}).MustBuild()
	assert.Panics(t, func() { MustReify[bindTarget](root) })
}

func TestBind(t *testing.T) {
	t.Run("merges onto existing values", func(t *testing.T) {
		root := NewBuilder().
			AddInMemory(map[string]string{"Bar": "updated"}).
			MustBuild()

		target := bindTarget{Bar: "old", Baz: true, Doom: []uint64{7}}
		require.NoError(t, Bind(root, &target))

		assert.Equal(t, "updated", target.Bar)
		assert.True(t, target.Baz, "fields without configuration data keep their value")
		assert.Equal(t, []uint64{7}, target.Doom)
	})

	t.Run("sequences are replaced wholesale", func(t *testing.T) {
		root := NewBuilder().
			AddInMemory(map[string]string{"Doom:0": "10"}).
			MustBuild()

		target := bindTarget{Doom: []uint64{1, 2, 3}}
		require.NoError(t, Bind(root, &target))
		assert.Equal(t, []uint64{10}, target.Doom)
	})

	t.Run("maps merge per key", func(t *testing.T) {
		type target struct {
			Labels map[string]string
		}

		root := NewBuilder().
			AddInMemory(map[string]string{"Labels:b": "2"}).
			MustBuild()

		tgt := target{Labels: map[string]string{"a": "1", "b": "old"}}
		require.NoError(t, Bind(root, &tgt))
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, tgt.Labels)
	})

	t.Run("rejects non-pointer targets", func(t *testing.T) {
		root := NewBuilder().AddInMemory(nil).MustBuild()
		assert.Error(t, Bind(root, bindTarget{}))
	})
}

func TestBindAt(t *testing.T) {
	root := NewBuilder().
		AddInMemory(map[string]string{"App:Bar": "v", "App:Baz": "true"}).
		MustBuild()

	t.Run("binds the named section", func(t *testing.T) {
		var target bindTarget
		require.NoError(t, BindAt(root, "App", &target))
		assert.Equal(t, "v", target.Bar)
		assert.True(t, target.Baz)
	})

	t.Run("nonexistent section leaves target untouched", func(t *testing.T) {
		target := bindTarget{Bar: "keep"}
		require.NoError(t, BindAt(root, "Nope", &target))
		assert.Equal(t, "keep", target.Bar)
	})
}

func TestGetValue(t *testing.T) {
	root := NewBuilder().
		AddInMemory(map[string]string{
			"Port":    "8080",
			"Ratio":   "0.5",
			"Enabled": "true",
			"Broken":  "not-an-int",
		}).
		MustBuild()

	t.Run("present", func(t *testing.T) {
		v, ok, err := GetValue[int](root, "Port")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 8080, v)

		f, ok, err := GetValue[float64](root, "Ratio")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0.5, f)

		b, ok, err := GetValue[bool](root, "Enabled")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, b)
	})

	t.Run("absent", func(t *testing.T) {
		v, ok, err := GetValue[int](root, "Missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("parse error", func(t *testing.T) {
		_, ok, err := GetValue[int](root, "Broken")
		assert.True(t, ok)
		var bindErr *BindError
		require.ErrorAs(t, err, &bindErr)
	})

	t.Run("or default", func(t *testing.T) {
		v, err := GetValueOrDefault[int](root, "Missing")
		require.NoError(t, err)
		assert.Zero(t, v)

		v, err = GetValueOrDefault[int](root, "Port")
		require.NoError(t, err)
		assert.Equal(t, 8080, v)
	})
}
