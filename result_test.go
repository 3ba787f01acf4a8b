package timeaux

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResultSucceed(t *testing.T) {
	var (
		assert = assert.New(t)
		r      = Succeed(123)
	)

	assert.True(r.OK())
	assert.NoError(r.Err())
	assert.Equal(123, r.Value())
	assert.Equal("Succeed(123)", r.String())

	v, err := r.Get()
	assert.Equal(123, v)
	assert.NoError(err)
}

func testResultFail(t *testing.T) {
	var (
		assert = assert.New(t)

		expectedErr = errors.New("expected")
		r           = Fail[string](expectedErr)
	)

	assert.False(r.OK())
	assert.Equal(expectedErr, r.Err())
	assert.Equal("Fail(expected)", r.String())

	v, err := r.Get()
	assert.Empty(v)
	assert.Equal(expectedErr, err)

	assert.Panics(func() {
		r.Value()
	})

	assert.Panics(func() {
		Fail[int](nil)
	})
}

func testResultOf(t *testing.T) {
	assert := assert.New(t)

	r := Of(1, nil)
	assert.True(r.OK())
	assert.Equal(1, r.Value())

	r = Of(1, errors.New("expected"))
	assert.False(r.OK())
	v, _ := r.Get()
	assert.Zero(v)
}

func testResultZero(t *testing.T) {
	var (
		assert = assert.New(t)
		r      Result[Unit]
	)

	assert.True(r.OK())
	assert.Equal(Unit{}, r.Value())
}

func testResultCollect(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		first  = errors.New("first")
		second = errors.New("second")
	)

	all := Collect(Succeed(1), Succeed(2), Succeed(3))
	require.True(all.OK())
	assert.Equal([]int{1, 2, 3}, all.Value())

	empty := Collect[int]()
	require.True(empty.OK())
	assert.Empty(empty.Value())

	failed := Collect(Succeed(1), Fail[int](first), Succeed(3), Fail[int](second))
	require.False(failed.OK())
	assert.ErrorIs(failed.Err(), first)
	assert.ErrorIs(failed.Err(), second)

	var merr *multierror.Error
	require.ErrorAs(failed.Err(), &merr)
	assert.Len(merr.Errors, 2)
}

func TestResult(t *testing.T) {
	t.Run("Succeed", testResultSucceed)
	t.Run("Fail", testResultFail)
	t.Run("Of", testResultOf)
	t.Run("Zero", testResultZero)
	t.Run("Collect", testResultCollect)
}
