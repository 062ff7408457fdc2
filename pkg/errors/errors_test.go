package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/modeldesk/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "record",
			ID:       "gpt-4o",
		}
		assert.Equal(t, "record with ID gpt-4o not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("record", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("params.temperature", "hot", "expected a number")
		assert.Equal(t, "validation failed for field params.temperature: expected a number", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty path"}
		assert.Equal(t, "validation failed: empty path", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "message only",
			err:  &pkgerrors.ParseError{Format: "json", Message: "unexpected EOF"},
			want: "json parse error: unexpected EOF",
		},
		{
			name: "with file",
			err:  &pkgerrors.ParseError{Format: "json", File: "models.json", Message: "bad token"},
			want: "parse error in json file models.json: bad token",
		},
		{
			name: "with offset",
			err:  &pkgerrors.ParseError{Format: "json", Offset: 12, Message: "bad token"},
			want: "json parse error at offset 12: bad token",
		},
		{
			name: "with file and offset",
			err:  &pkgerrors.ParseError{Format: "json", File: "a.json", Offset: 3, Message: "bad token"},
			want: "parse error in json file a.json at offset 3: bad token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsParseError(tt.err))
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
		assert.NoError(t, pkgerrors.WrapResource("load", "session", "", nil))
		assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
	})

	t.Run("io unwraps", func(t *testing.T) {
		base := errors.New("disk full")
		err := pkgerrors.WrapIO("write", "/tmp/session.json", base)
		require.Error(t, err)
		assert.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "/tmp/session.json")

		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "write", ioErr.Operation)
	})

	t.Run("resource chain keeps parse sentinel", func(t *testing.T) {
		parse := pkgerrors.WrapParse("json", "", errors.New("invalid character"))
		err := pkgerrors.WrapResource("import", "workspace", "", parse)
		assert.True(t, pkgerrors.IsParseError(err))
		assert.Equal(t, "failed to import workspace: json parse error: invalid character", err.Error())
	})
}

func TestNewParseError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.NewParseError("json", "models.json", base.Error(), base)
	assert.ErrorIs(t, err, base)
	assert.True(t, pkgerrors.IsParseError(err))
	assert.Equal(t, "parse error in json file models.json: unexpected end of JSON input", err.Error())
}

func TestNothingToUndo(t *testing.T) {
	err := fmt.Errorf("undo: %w", pkgerrors.ErrNothingToUndo)
	assert.True(t, pkgerrors.IsNothingToUndo(err))
}
