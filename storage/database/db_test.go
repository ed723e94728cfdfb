package database

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/registrar/core"
)

func Test_dsn(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		storage core.StorageConfig
		want    string
		wantErr bool
	}{
		{
			name:    "sqlite",
			storage: core.StorageConfig{Engine: EngineSqlite, Path: filepath.Join(dir, "data", "registrar.db")},
			want:    "file:" + filepath.Join(dir, "data", "registrar.db") + "?_busy_timeout=5000",
		},
		{
			name: "postgres",
			storage: core.StorageConfig{
				Engine: EnginePostgres, Host: "db", Port: "5432", Name: "registrar", User: "reg", Password: "p@ss",
			},
			want: "postgres://reg:p%40ss@db:5432/registrar?sslmode=require&timezone=utc",
		},
		{
			name:    "postgres without TLS",
			storage: core.StorageConfig{Engine: EnginePostgres, Host: "db", Name: "registrar", User: "reg", DisableTLS: true},
			want:    "postgres://reg:@db/registrar?sslmode=disable&timezone=utc",
		},
		{
			name:    "unsupported",
			storage: core.StorageConfig{Engine: "mongo"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dsn(&core.Config{Storage: tt.storage})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.DirExists(t, filepath.Join(dir, "data"))
}

func TestRunMigration(t *testing.T) {
	conf := &core.Config{Storage: core.StorageConfig{Engine: EngineSqlite, Path: filepath.Join(t.TempDir(), "registrar.db")}}
	db, err := Open(conf)
	require.NoError(t, err)
	defer db.Close()

	var ran []string
	orig := gooseFuncs
	defer func() { gooseFuncs = orig }()
	gooseFuncs = map[string]func(*sql.DB, fs.FS, string) error{}
	for _, cmd := range MigrationCommands {
		cmd := cmd
		gooseFuncs[cmd] = func(_ *sql.DB, fsys fs.FS, dir string) error {
			_, err := fs.Stat(fsys, dir)
			ran = append(ran, cmd)
			return err
		}
	}

	for _, cmd := range MigrationCommands {
		assert.NoError(t, RunMigration(db, cmd))
	}
	assert.Equal(t, MigrationCommands, ran)
	assert.EqualError(t, RunMigration(db, "lol"), `"lol": no such command`)
}
