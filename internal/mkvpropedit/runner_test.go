package mkvpropedit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkvbatch/internal/services"
)

func TestStatusFromExitCode(t *testing.T) {
	tests := map[int]Status{0: StatusSuccess, 1: StatusWarning, 2: StatusError, 3: StatusUnknown, -1: StatusUnknown}
	for code, want := range tests {
		assert.Equal(t, want, StatusFromExitCode(code), "exit %d", code)
	}
}

func TestRunnerPassesUnquotedArgv(t *testing.T) {
	runner := NewRunner("", nil)
	var gotName string
	var gotArgs []string
	runner.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, int, error) {
		gotName = name
		gotArgs = args
		return []byte("Done.\n"), 0, nil
	})

	result, err := runner.Run(context.Background(), []string{`"/media/a.mkv"`, "--edit", "track:a1", "--set", `name="Stereo AAC"`})
	require.NoError(t, err)
	assert.Equal(t, "mkvpropedit", gotName)
	assert.Equal(t, []string{"/media/a.mkv", "--edit", "track:a1", "--set", "name=Stereo AAC"}, gotArgs)
	assert.Equal(t, Result{Path: "/media/a.mkv", Status: StatusSuccess, ExitCode: 0, Output: "Done."}, result)
}

func TestRunnerLogsElapsedTime(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner("", slog.New(slog.NewJSONHandler(&buf, nil)))
	runner.WithCommandRunner(func(context.Context, string, ...string) ([]byte, int, error) {
		return nil, 0, nil
	})

	_, err := runner.Run(context.Background(), []string{`"/media/a.mkv"`})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"file updated"`)
	assert.Contains(t, buf.String(), `"elapsed":`)
}

func TestRunnerMapsExitCodes(t *testing.T) {
	tests := []struct {
		code    int
		status  Status
		wantErr bool
	}{
		{1, StatusWarning, false},
		{2, StatusError, true},
		{9, StatusUnknown, true},
	}
	for _, tc := range tests {
		runner := NewRunner("/usr/bin/mkvpropedit", nil)
		runner.WithCommandRunner(func(context.Context, string, ...string) ([]byte, int, error) {
			return []byte("message"), tc.code, nil
		})
		result, err := runner.Run(context.Background(), []string{`"a.mkv"`})
		assert.Equal(t, tc.status, result.Status)
		assert.Equal(t, tc.code, result.ExitCode)
		if tc.wantErr {
			assert.ErrorIs(t, err, services.ErrExternalTool)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestRunnerStartFailure(t *testing.T) {
	runner := NewRunner("missing", nil)
	runner.WithCommandRunner(func(context.Context, string, ...string) ([]byte, int, error) {
		return nil, -1, errors.New("executable file not found")
	})
	result, err := runner.Run(context.Background(), []string{`"a.mkv"`})
	assert.ErrorIs(t, err, services.ErrExternalTool)
	assert.Equal(t, StatusUnknown, result.Status)

	_, err = runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingInput)
}
