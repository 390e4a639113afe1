package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "select transcript")
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrInsertFailed))
	assert.Equal(t, "select transcript: transcript not found", err.Error())
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "noop"))
	assert.Nil(t, Wrapf(nil, "noop %d", 1))
}

func TestNotFound(t *testing.T) {
	err := NotFound(42)
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "id 42")
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("store: %w", Wrap(ErrUpdateFailed, "patch"))
	assert.True(t, stderrors.Is(err, ErrUpdateFailed))
}

func TestRequiredField(t *testing.T) {
	err := RequiredField("SUPABASE_KEY")
	assert.True(t, stderrors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "SUPABASE_KEY is required")
}

type causeErr struct{ code int }

func (c *causeErr) Error() string { return fmt.Sprintf("cause %d", c.code) }

func TestMark_KeepsBothChains(t *testing.T) {
	err := Mark(ErrDeleteFailed, Wrap(ErrRequestFailed, "dial tcp"))
	assert.True(t, stderrors.Is(err, ErrDeleteFailed))
	assert.True(t, stderrors.Is(err, ErrRequestFailed))

	err = Mark(ErrQueryFailed, &causeErr{code: 7})
	var target *causeErr
	assert.True(t, stderrors.As(err, &target))
	assert.Equal(t, 7, target.code)
	assert.Equal(t, "query failed: cause 7", err.Error())

	assert.Nil(t, Mark(ErrQueryFailed, nil))
}
