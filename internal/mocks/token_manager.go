package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/inklet/inklet-server/internal/model"
)

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}
