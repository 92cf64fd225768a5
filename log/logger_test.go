package log_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name         string
		isProduction bool
		level        string
		expectErr    bool
	}{
		{
			name:         "production json logger",
			isProduction: true,
			level:        "debug",
		},
		{
			name:  "development console logger",
			level: "info",
		},
		{
			name:  "empty level defaults to info",
			level: "",
		},
		{
			name:      "invalid level",
			level:     "loud",
			expectErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fileName := filepath.Join(t.TempDir(), "sqs.log")

			logger, err := log.NewLogger(tc.isProduction, fileName, tc.level)
			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, logger)

			logger.Info("logger initialized", zap.String("test", tc.name))
		})
	}
}
