package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "volchart/internal/errors"
	"volchart/internal/shared/testutil"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
	}{
		{
			name: "valid directory with files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				testutil.WriteFile(t, dir, "BTC.csv", testutil.SampleTradingCSV...)
				return dir
			},
		},
		{
			name: "valid empty directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "test.txt", "test")
			},
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			validator := NewFileValidator(logger)

			err := validator.ValidateInputDirectory(tt.setupFunc(t))

			if tt.wantType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
				assert.NotEmpty(t, logs.GetRecordsByLevel(slog.LevelError))
				return
			}
			assert.NoError(t, err)
			testutil.AssertNoErrors(t, logs)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory is created",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "new", "nested", "dir")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			require.NoError(t, validator.ValidateOutputDirectory(dir))

			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())

			_, err = os.Stat(filepath.Join(dir, ".write_test"))
			assert.True(t, os.IsNotExist(err), "probe file should be removed")
		})
	}
}

func TestFileValidator_ValidateOutputDirectory_BlockedByFile(t *testing.T) {
	blocker := testutil.WriteFile(t, t.TempDir(), "blocker", "x")

	err := NewFileValidator(nil).ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestFileValidator_ValidateCSVFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
	}{
		{
			name: "valid csv",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "BTC_Trading_Average.csv", testutil.SampleTradingCSV...)
			},
		},
		{
			name: "upper case extension",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "BTC.CSV", testutil.SampleTradingCSV...)
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.csv")
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "wrong extension",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, t.TempDir(), "BTC.xlsx", "x")
			},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "missing file with wrong extension reports the extension",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.txt")
			},
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "directory named like a csv",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "dir.csv")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateCSVFile(tt.setupFunc(t))
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}
