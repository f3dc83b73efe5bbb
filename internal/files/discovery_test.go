package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindCSVFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "only CSV files sorted by name",
			files:    []string{"SOL.csv", "BTC_Trading_Average.csv", "eth.CSV"},
			expected: []string{"BTC_Trading_Average.csv", "SOL.csv", "eth.CSV"},
		},
		{
			name:     "mixed file types",
			files:    []string{"BTC.csv", "BTC.xlsx", "notes.txt", "data.csv.bak"},
			expected: []string{"BTC.csv"},
		},
		{
			name:     "no CSV files",
			files:    []string{"report.xlsx", "readme.md"},
			expected: nil,
		},
		{
			name:     "empty directory",
			files:    []string{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644))
			}

			found, err := NewDiscovery(tmpDir).FindCSVFiles(".")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(tmpDir, f.Name), f.Path)
				assert.Equal(t, int64(1), f.Size)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindCSVFiles_SkipsSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "nested.csv"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "nested.csv", "inner.csv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "top.csv"), []byte("x"), 0644))

	found, err := NewDiscovery("/unused").FindCSVFiles(tmpDir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "top.csv", found[0].Name)
}

func TestFindCSVFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindCSVFiles("does-not-exist")
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{
		"BTC_volume_2024-01-02_10-00-00.csv",
		"BTC_volume_2024-01-01_10-00-00.csv",
		"ETH_volume_2024-01-01_10-00-00.csv",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0644))
	}

	found, err := NewDiscovery(tmpDir).FindFilesByPattern(".", "BTC_volume_*.csv")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "BTC_volume_2024-01-01_10-00-00.csv", found[0].Name)

	_, err = NewDiscovery(tmpDir).FindFilesByPattern(".", "[")
	assert.Error(t, err)
}

func TestGetLatestFile(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)

	now := time.Now()
	latest, ok := GetLatestFile([]FileInfo{
		{Name: "old", ModTime: now.Add(-time.Hour)},
		{Name: "new", ModTime: now},
		{Name: "middle", ModTime: now.Add(-time.Minute)},
	})
	require.True(t, ok)
	assert.Equal(t, "new", latest.Name)
}
