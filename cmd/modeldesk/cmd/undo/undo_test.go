package undo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/internal/appcontext"
	"github.com/agentstation/modeldesk/pkg/logging"
)

func newMock(t *testing.T) (*appcontext.Mock, *modeldesk.Workspace) {
	t.Helper()
	ws, err := modeldesk.New(modeldesk.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	_, err = ws.Import([]byte(`[{"id": "llama3", "name": "Llama 3"}]`))
	require.NoError(t, err)
	return &appcontext.Mock{
		WorkspaceFunc: func() (*modeldesk.Workspace, error) { return ws, nil },
	}, ws
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestUndoCommand(t *testing.T) {
	app, ws := newMock(t)
	require.NoError(t, ws.SetField("llama3", "name", "Changed"))
	require.NoError(t, ws.SetField("llama3", "name", "Changed again"))

	_, stderr, err := execute(NewCommand(app), "--steps", "5")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Undid 2 change(s)")
	assert.Equal(t, 1, app.Saves)

	r, err := ws.Get("llama3")
	require.NoError(t, err)
	assert.Equal(t, "Llama 3", r.Name)
}

func TestUndoCommand_EmptyHistory(t *testing.T) {
	app, _ := newMock(t)

	_, stderr, err := execute(NewCommand(app))
	require.NoError(t, err)
	assert.Contains(t, stderr, "Nothing to undo")
	assert.Equal(t, 0, app.Saves)
}

func TestHistoryCommand_EmptyReportsInfo(t *testing.T) {
	app, _ := newMock(t)

	_, stderr, err := execute(NewHistoryCommand(app))
	require.NoError(t, err)
	assert.Contains(t, stderr, "No changes to undo")
}

func TestHistoryCommand_AlertWriteFailure(t *testing.T) {
	app, _ := newMock(t)

	cmd := NewHistoryCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(brokenWriter{})
	cmd.SetArgs(nil)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}
