package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodeworks/refinery/pkg/errors"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refinery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
extracts:
  customers: extracts/cust_info.csv
  sales: extracts/sales_details.csv
warehouse:
  driver: csv
  path: silver
`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "extracts/cust_info.csv", m.Extracts.Customers)
	assert.Equal(t, DriverCSV, m.Target.Driver)
	assert.Equal(t, "silver", m.Target.Path)

	set := m.Sources()
	assert.NotNil(t, set.Customers)
	assert.NotNil(t, set.Sales)
	assert.Nil(t, set.Products, "entities without an extract are skipped")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "driver without path",
			body:    "extracts:\n  customers: a.csv\nwarehouse:\n  driver: sqlite\n",
			wantErr: "requires a path",
		},
		{
			name:    "unknown driver",
			body:    "extracts:\n  customers: a.csv\nwarehouse:\n  driver: parquet\n  path: out\n",
			wantErr: "unknown driver",
		},
		{
			name:    "no driver",
			body:    "extracts:\n  customers: a.csv\n",
			wantErr: "no driver",
		},
		{
			name:    "no extracts",
			body:    "warehouse:\n  driver: memory\n",
			wantErr: "no extracts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *errors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestOpenMemory(t *testing.T) {
	m := &Manifest{
		Extracts: Extracts{Customers: "a.csv"},
		Target:   Target{Driver: DriverMemory},
	}
	require.NoError(t, m.Validate())

	wh, closer, err := m.Open()
	require.NoError(t, err)
	assert.NotNil(t, wh)
	assert.NoError(t, closer())
}

func TestManifestPath(t *testing.T) {
	assert.Equal(t, "flag.yaml", ManifestPath("flag.yaml", "default.yaml"))

	t.Setenv("REFINERY_MANIFEST", "env.yaml")
	assert.Equal(t, "env.yaml", ManifestPath("", "default.yaml"))

	t.Setenv("REFINERY_MANIFEST", "")
	assert.Equal(t, "default.yaml", ManifestPath("", "default.yaml"))
}
