package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "O1")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "O1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: O1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "O1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: O1 (cause: record not found)",
			err.Error())
	})

	t.Run("non string ids are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("userId")
		assert.Equal(t, "value is required: userId", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("required with cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredErrorWithCause("location", errors.New("missing lat"))
		assert.Equal(t, "value is required: location (cause: missing lat)", err.Error())
	})

	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("bad"))
		assert.Equal(t, "value is invalid: status (cause: bad)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 91.5, -90.0, 90.0)
		assert.Equal(t, "value is out of range: 91.5 is lat, min value is -90, max value is 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("out of range strips newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestAuthRequiredError(t *testing.T) {
	err := errs.NewAuthRequiredError("update_location", "courier")

	assert.Equal(t, "authentication required: update_location requires an authenticated courier", err.Error())
	require.ErrorIs(t, err, errs.ErrAuthRequired)
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("delivered", "preparing")

	assert.Equal(t, "invalid status transition: delivered -> preparing", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	withCause := errs.NewInvalidTransitionErrorWithCause("placed", "teleported", errors.New("unknown status"))
	assert.Contains(t, withCause.Error(), "(cause: unknown status)")
}

func TestStoreUnavailableError(t *testing.T) {
	err := errs.NewStoreUnavailableError("updateOrderFields", context.DeadlineExceeded)

	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "updateOrderFields")

	bare := errs.NewStoreUnavailableError("findOrderById", nil)
	assert.Equal(t, "order store unavailable: findOrderById", bare.Error())
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		err  error
		kind errs.Kind
	}{
		{nil, ""},
		{errs.NewAuthRequiredError("subscribe_to_order", "customer"), errs.KindAuthRequired},
		{errs.NewValueIsRequiredError("orderId"), errs.KindValidation},
		{errs.NewValueIsInvalidError("location"), errs.KindValidation},
		{errs.NewValueIsOutOfRangeError("lng", 200, -180, 180), errs.KindValidation},
		{errs.ErrAlreadyBound, errs.KindValidation},
		{errs.NewInvalidTransitionError("refunded", "placed"), errs.KindInvalidTransition},
		{errs.NewObjectNotFoundError("order", "O9"), errs.KindNotFound},
		{errs.NewStoreUnavailableError("findOrderById", errors.New("conn refused")), errs.KindStoreUnavailable},
		{fmt.Errorf("wrapped: %w", errs.NewObjectNotFoundError("order", "O9")), errs.KindNotFound},
		{errors.New("boom"), errs.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}
