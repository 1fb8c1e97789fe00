package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/roylobo/genai-portal/internal/models"
)

type mockUserStore struct {
	createFunc        func(user *models.User) error
	getByUsernameFunc func(username string) (*models.User, error)
}

func (m *mockUserStore) Create(user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserStore) GetByUsername(username string) (*models.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(username)
	}
	return nil, nil
}

func TestService_Register(t *testing.T) {
	var created *models.User
	store := &mockUserStore{
		createFunc: func(user *models.User) error {
			created = user
			user.ID = 7
			return nil
		},
	}
	svc := NewService(store, zap.NewNop())

	user, err := svc.Register("  Alice.Smith  ", "hunter2", "Finance")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "alice.smith", user.Username)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Finance", user.Department)
	// Stored hash must verify against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	store := &mockUserStore{
		getByUsernameFunc: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.Register("alice", "hunter2", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Register_InvalidUsername(t *testing.T) {
	svc := NewService(&mockUserStore{}, zap.NewNop())

	for _, username := range []string{"", "ab", "has spaces", "!!bang"} {
		_, err := svc.Register(username, "hunter2", "")
		assert.ErrorIs(t, err, ErrInvalidUsername, "username %q", username)
	}
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc := NewService(&mockUserStore{}, zap.NewNop())

	_, err := svc.Register("alice", "abc", "")
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{
		getByUsernameFunc: func(username string) (*models.User, error) {
			if username == "alice" {
				return &models.User{ID: 3, Username: "alice", PasswordHash: string(hash)}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(store, zap.NewNop())

	user, err := svc.Login("ALICE", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	_, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	store := &mockUserStore{
		getByUsernameFunc: func(string) (*models.User, error) { return nil, storeErr },
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.Login("alice", "hunter2")
	assert.ErrorIs(t, err, storeErr)
}
