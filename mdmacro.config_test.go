package mdmacro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, DefaultIncludePaths, cfg.IncludePaths)
	assert.Equal(t, DefaultMarkdownDir, cfg.MarkdownDir)
	assert.Equal(t, DefaultLang, cfg.DefaultLang)
	assert.Equal(t, DefaultCodeURLPrefix, cfg.CodeURLPrefix)
	assert.Equal(t, DefaultImageURLPrefix, cfg.ImageURLPrefix)
	assert.Equal(t, DefaultDiffHook, cfg.DiffHook)
	assert.Equal(t, StorageDriverNameFilesystem, cfg.Storage.Driver)
	require.NoError(t, cfg.Validate())

	cfg.IncludePaths[0] = "changed"
	assert.Equal(t, DefaultMarkdownDir, DefaultIncludePaths[0])
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
base_dir: /srv/site
include_paths:
  - pages
  - snippets
default_lang: bash
code_url_prefix: /raw/
storage:
  driver: memory
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "/srv/site", cfg.BaseDir)
	assert.Equal(t, []string{"pages", "snippets"}, cfg.IncludePaths)
	assert.Equal(t, "bash", cfg.DefaultLang)
	assert.Equal(t, "/raw/", cfg.CodeURLPrefix)
	assert.Equal(t, DefaultImageURLPrefix, cfg.ImageURLPrefix)
	assert.Equal(t, DefaultMarkdownDir, cfg.MarkdownDir)
	assert.Equal(t, StorageDriverNameMemory, cfg.Storage.Driver)

	assert.Equal(t, filepath.Join("/srv/site", "markdown"), cfg.MarkdownPath())
	assert.Equal(t, []string{
		filepath.Join("/srv/site", "pages"),
		filepath.Join("/srv/site", "snippets"),
	}, cfg.IncludeDirs())
	assert.Equal(t, append(cfg.IncludeDirs(), cfg.MarkdownPath()), cfg.WatchDirs())
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
		field   string
	}{
		{"invalid yaml", "base_dir: [unterminated", ErrMsgConfigParseFailed, ""},
		{"empty include path", "include_paths: [markdown, '']", ErrMsgEmptyIncludePath, FieldIncludePaths},
		{"empty base dir", "base_dir: ''", ErrMsgInvalidConfigValue, FieldBaseDir},
		{"empty markdown dir", "markdown_dir: ''", ErrMsgInvalidConfigValue, FieldMarkdownDir},
		{"empty storage driver", "storage: {driver: ''}", ErrMsgInvalidConfigValue, FieldStorageDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			if tt.field != "" {
				var custom *cuserr.CustomError
				require.ErrorAs(t, err, &custom)
				field, _ := custom.GetMetadata(MetaKeyField)
				assert.Equal(t, tt.field, field)
			}
		})
	}
}

func TestLoadConfig_RelativeBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdmacro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir: site\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "site"), cfg.BaseDir)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgConfigReadFailed)

	var custom *cuserr.CustomError
	require.ErrorAs(t, err, &custom)
	got, _ := custom.GetMetadata(MetaKeyPath)
	assert.Equal(t, path, got)
}

func TestConfig_NewEngine(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "code"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "code", "a.py"), []byte("A"), 0o644))

	cfg := DefaultConfig()
	cfg.BaseDir = base
	cfg.IncludePaths = []string{"code"}

	engine, err := cfg.NewEngine(nil)
	require.NoError(t, err)

	out, err := engine.Resolve("<<include a.py>>\n")
	require.NoError(t, err)
	assert.Equal(t, "A", out)
}

func TestConfig_OpenStorage(t *testing.T) {
	t.Run("filesystem defaults to markdown dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseDir = t.TempDir()

		storage, err := cfg.OpenStorage()
		require.NoError(t, err)
		defer storage.Close()

		fsStorage, ok := storage.(*FilesystemStorage)
		require.True(t, ok)
		assert.Equal(t, cfg.MarkdownPath(), fsStorage.Root())
	})

	t.Run("memory", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.Driver = StorageDriverNameMemory

		storage, err := cfg.OpenStorage()
		require.NoError(t, err)
		defer storage.Close()
		assert.IsType(t, &MemoryStorage{}, storage)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.Driver = "nosuch"

		_, err := cfg.OpenStorage()
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgStorageDriverNotFound)
	})
}
