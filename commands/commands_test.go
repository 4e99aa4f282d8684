package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupHooks(t *testing.T) {
	var order []string
	RegisterCleanup(func() { order = append(order, "first") })
	RegisterCleanup(func() { order = append(order, "second") })

	RunCleanups()
	assert.Equal(t, []string{"second", "first"}, order)

	// hooks run once; a second pass is a no-op
	RunCleanups()
	assert.Equal(t, []string{"second", "first"}, order)
}
