package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type thing struct{ n int }

func TestName(t *testing.T) {
	t.Run("is stable for the same pointer", func(t *testing.T) {
		a := &thing{1}
		assert.Equal(t, Name(a), Name(a))
	})

	t.Run("differs between pointers", func(t *testing.T) {
		a, b := &thing{1}, &thing{1}
		assert.NotEqual(t, Name(a), Name(b))
	})

	t.Run("nil", func(t *testing.T) {
		var a *thing
		assert.Equal(t, "Ø", Name(a))
		assert.Equal(t, "Ø", Name(nil))
	})
}
