package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

func newWatchlistService(store *MockStore) *WatchlistService {
	return NewWatchlistService(store, store, discardLogger())
}

func TestWatchlistAdd(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(*MockStore)
		wantKind Kind
		wantErr  bool
	}{
		{
			name: "saved",
			setup: func(m *MockStore) {
				m.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(3), nil)
				m.On("AddToWatchlist", mock.Anything, int64(1), int64(3)).Return(nil)
			},
		},
		{
			name: "unknown title",
			setup: func(m *MockStore) {
				m.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(0), storage.ErrNotFound)
			},
			wantErr:  true,
			wantKind: KindNotFound,
		},
		{
			name: "duplicate signal from store",
			setup: func(m *MockStore) {
				m.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(3), nil)
				m.On("AddToWatchlist", mock.Anything, int64(1), int64(3)).
					Return(fmt.Errorf("%w: Movie already exists in watchlist", storage.ErrAlreadyExists))
			},
			wantErr:  true,
			wantKind: KindConflict,
		},
		{
			name: "unknown user",
			setup: func(m *MockStore) {
				m.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(3), nil)
				m.On("AddToWatchlist", mock.Anything, int64(1), int64(3)).Return(storage.ErrInvalidReference)
			},
			wantErr:  true,
			wantKind: KindNotFound,
		},
		{
			name: "other storage failure",
			setup: func(m *MockStore) {
				m.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(3), nil)
				m.On("AddToWatchlist", mock.Anything, int64(1), int64(3)).Return(errors.New("connection reset"))
			},
			wantErr:  true,
			wantKind: KindInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockStore)
			tc.setup(store)

			err := newWatchlistService(store).Add(ctx, 1, " Matrix ")
			if !tc.wantErr {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.wantKind, KindOf(err))
			}
			store.AssertExpectations(t)
		})
	}
}

func TestWatchlistAddConflictMessage(t *testing.T) {
	store := new(MockStore)
	store.On("FindMovieIDByTitle", mock.Anything, "Matrix").Return(int64(3), nil)
	store.On("AddToWatchlist", mock.Anything, int64(1), int64(3)).Return(storage.ErrAlreadyExists)

	err := newWatchlistService(store).Add(context.Background(), 1, "Matrix")

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, MsgAlreadyInList, se.Message)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestWatchlistAddValidatesInput(t *testing.T) {
	store := new(MockStore)
	svc := newWatchlistService(store)

	assert.Equal(t, KindInvalidInput, KindOf(svc.Add(context.Background(), 0, "Matrix")))
	assert.Equal(t, KindInvalidInput, KindOf(svc.Add(context.Background(), 1, "   ")))
	store.AssertNotCalled(t, "FindMovieIDByTitle", mock.Anything, mock.Anything)
}

func TestWatchlistList(t *testing.T) {
	now := time.Now()
	entries := []models.WatchlistEntry{
		{MovieID: 2, Title: "Heat", DateAdded: now},
		{MovieID: 1, Title: "Matrix", DateAdded: now.Add(-time.Hour)},
	}

	store := new(MockStore)
	store.On("ListWatchlist", mock.Anything, int64(1)).Return(entries, nil)
	store.On("ListWatchlist", mock.Anything, int64(2)).Return(nil, nil)
	svc := newWatchlistService(store)

	got, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	empty, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.List(context.Background(), 0)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestWatchlistRemove(t *testing.T) {
	store := new(MockStore)
	store.On("RemoveFromWatchlist", mock.Anything, int64(1), int64(3)).Return(true, nil)
	store.On("RemoveFromWatchlist", mock.Anything, int64(1), int64(999)).Return(false, nil)
	store.On("RemoveFromWatchlist", mock.Anything, int64(1), int64(4)).Return(false, errors.New("boom"))
	svc := newWatchlistService(store)

	removed, err := svc.Remove(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(context.Background(), 1, 999)
	require.NoError(t, err, "a missing pair is an outcome, not an error")
	assert.False(t, removed)

	_, err = svc.Remove(context.Background(), 1, 4)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestWatchlistContains(t *testing.T) {
	store := new(MockStore)
	store.On("InWatchlist", mock.Anything, int64(1), int64(3)).Return(true, nil)

	ok, err := newWatchlistService(store).Contains(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}
