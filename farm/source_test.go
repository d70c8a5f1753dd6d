package farm

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

func TestJSONSource(t *testing.T) {
	t.Run("BareArray", func(t *testing.T) {
		path := writeFile(t, "old.json", `[
			{"name": "Notepad", "enabled": true, "folder": "/apps"},
			{"name": "Calc", "enabled": false}
		]`)

		inv, err := NewJSONSource("old-farm", path).Load()
		require.NoError(t, err)
		assert.Equal(t, "old-farm", inv.Farm)
		require.Len(t, inv.Apps, 2)
		assert.Equal(t, "Notepad", inv.Apps[0].Name)
		assert.True(t, inv.Apps[0].Enabled)
		assert.Equal(t, "/apps", inv.Apps[0].Folder)
	})

	t.Run("InventoryObject", func(t *testing.T) {
		path := writeFile(t, "snap.json", `{"farm": "prod", "apps": [{"name": "Calc", "enabled": true}]}`)

		inv, err := NewJSONSource("ignored", path).Load()
		require.NoError(t, err)
		assert.Equal(t, "prod", inv.Farm, "farm name in the file wins")
		require.Len(t, inv.Apps, 1)
	})

	t.Run("Garbage", func(t *testing.T) {
		path := writeFile(t, "bad.json", `not json`)
		_, err := NewJSONSource("f", path).Load()
		assert.Error(t, err)
	})
}

func TestCSVSource(t *testing.T) {
	path := writeFile(t, "new.csv", "Name,Enabled,Folder\nNotepad,yes,/apps\nCalc,false,\n")

	inv, err := NewCSVSource("new-farm", path).Load()
	require.NoError(t, err)
	require.Len(t, inv.Apps, 2)
	assert.Equal(t, PublishedApp{Name: "Notepad", Enabled: true, Folder: "/apps"}, inv.Apps[0])
	assert.False(t, inv.Apps[1].Enabled)

	t.Run("MissingNameColumn", func(t *testing.T) {
		path := writeFile(t, "bad.csv", "Enabled\ntrue\n")
		_, err := NewCSVSource("f", path).Load()
		assert.Error(t, err)
	})
}

func TestFromFile(t *testing.T) {
	_, err := FromFile("f", "apps.xml")
	assert.Error(t, err)

	src, err := FromFile("f", "apps.JSON")
	require.NoError(t, err)
	assert.Equal(t, "f", src.Farm())
}

func TestAppRecord(t *testing.T) {
	rec := PublishedApp{Name: "Calc", Enabled: true}.Record()
	assert.Equal(t, "Calc", rec.Get("Name").Str)
	assert.False(t, rec.Has("Folder"), "empty optional fields stay absent")
}
