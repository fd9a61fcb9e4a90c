package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitID(t *testing.T) {
	t.Run("json number", func(t *testing.T) {
		c := Commit{FieldNumber: json.Number("158291")}
		id, err := c.ID()
		require.NoError(t, err)
		assert.Equal(t, "158291", id)
	})

	t.Run("string number", func(t *testing.T) {
		c := Commit{FieldNumber: "42"}
		id, err := c.ID()
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("float number", func(t *testing.T) {
		c := Commit{FieldNumber: float64(7)}
		id, err := c.ID()
		require.NoError(t, err)
		assert.Equal(t, "7", id)
	})

	t.Run("int number", func(t *testing.T) {
		c := Commit{FieldNumber: 9000}
		id, err := c.ID()
		require.NoError(t, err)
		assert.Equal(t, "9000", id)
	})

	t.Run("missing number", func(t *testing.T) {
		c := Commit{"project": "tools"}
		_, err := c.ID()
		assert.ErrorIs(t, err, ErrMissingNumber)
	})

	t.Run("empty string number", func(t *testing.T) {
		c := Commit{FieldNumber: ""}
		_, err := c.ID()
		assert.ErrorIs(t, err, ErrMissingNumber)
	})

	t.Run("unsupported number type", func(t *testing.T) {
		c := Commit{FieldNumber: []any{1}}
		_, err := c.ID()
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})
}
