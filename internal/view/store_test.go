package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
)

func newTestStore(capacity int) (*Store, *fakeCatalog) {
	svc := &fakeCatalog{started: make(chan string, 4)}
	return NewStore(capacity, time.Hour, svc, browse.NewEngine("en"), logger.Discard()), svc
}

func TestStoreGetOrCreate(t *testing.T) {
	st, _ := newTestStore(10)

	s, created := st.GetOrCreate("")
	require.True(t, created)
	require.NotEmpty(t, s.ID)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := st.GetOrCreate("unknown")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, st.Len())
}

func TestStoreEvictionCancelsFetch(t *testing.T) {
	st, svc := newTestStore(1)
	first := st.Create()

	done := make(chan State, 1)
	go func() {
		done <- first.Dispatch(context.Background(), SearchSubmitted{Query: "slow"})
	}()
	<-svc.started

	st.Create()

	select {
	case state := <-done:
		assert.Equal(t, Failed, state.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("evicted session kept fetching")
	}
	_, ok := st.Get(first.ID)
	assert.False(t, ok)
}

func TestStoreClose(t *testing.T) {
	st, _ := newTestStore(5)
	st.Create()
	st.Create()

	st.Close()

	assert.Equal(t, 0, st.Len())
}
