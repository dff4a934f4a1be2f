package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create(7)
	require.NotEmpty(t, s.ID)

	got, err := st.Get(s.ID, 7)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get(s.ID, 8)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = st.Get("missing", 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreIdleExpiry(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create(1)

	now := time.Now()
	st.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err := st.Get(s.ID, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create(1)
	st.Delete(s.ID)
	_, err := st.Get(s.ID, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
