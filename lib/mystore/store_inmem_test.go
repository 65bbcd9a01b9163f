package mystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hookConfig struct {
	UID   string
	Event string
}

var (
	hook = hookConfig{UID: "123", Event: "jobCreated"}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	hs, cleanup, err := NewInMemoryStore[hookConfig](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := hs.Get(c, hook.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = hs.Put(c, hook.UID, hook)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		h, found, err := hs.Get(c, hook.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, hookConfig{UID: "123", Event: "jobCreated"}, h)
	})

	t.Run("List", func(t *testing.T) {
		all, err := hs.List(c)
		assert.NoError(t, err)
		assert.Equal(t, all, []hookConfig{hook})
	})

	t.Run("Remove", func(t *testing.T) {
		err := hs.Remove(c, hook.UID)
		assert.NoError(t, err)

		_, found, err := hs.Get(c, hook.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}
