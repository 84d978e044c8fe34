package browser

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orshemtov/auto10bis/internal/types"
)

func TestNamePattern(t *testing.T) {
	tests := []struct {
		name   string
		target types.Target
		want   string
	}{
		{
			"exact",
			types.Target{Role: types.RoleButton, Name: "Login"},
			`/^\s*Login\s*$/`,
		},
		{
			"prefix tolerates dynamic suffix",
			types.Target{Role: types.RoleButton, Name: "Add item", Prefix: true},
			`/^\s*Add item/`,
		},
		{
			"regex metacharacters are escaped",
			types.Target{Role: types.RoleButton, Name: "Place order (₪200.00)"},
			`/^\s*Place order \(₪200\.00\)\s*$/`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, namePattern(tt.target))
		})
	}
}

func TestExactPattern(t *testing.T) {
	assert.Equal(t, `/^\s*Monthly balance\s*$/`, exactPattern("Monthly balance"))
}

func TestWaitError(t *testing.T) {
	target := types.Target{Role: types.RoleButton, Name: "Place order", Prefix: true}

	t.Run("deadline maps to element not found", func(t *testing.T) {
		err := waitError(context.DeadlineExceeded, target, 10*time.Second)
		assert.ErrorIs(t, err, types.ErrElementNotFound)
		assert.Contains(t, err.Error(), "Place order")
		assert.Contains(t, err.Error(), "10s")
	})

	t.Run("deadline is also a timeout", func(t *testing.T) {
		err := waitError(context.DeadlineExceeded, target, 10*time.Second)
		assert.ErrorIs(t, err, types.ErrTimeout)
	})

	t.Run("deadline carries the typed error", func(t *testing.T) {
		err := waitError(context.DeadlineExceeded, target, 10*time.Second)

		var typed *types.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, "element_not_found", typed.Code)
		assert.Contains(t, typed.Message, "Place order")
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("browser crashed")
		err := waitError(cause, target, 10*time.Second)
		assert.NotErrorIs(t, err, types.ErrElementNotFound)
		assert.Contains(t, err.Error(), "browser crashed")
	})
}
