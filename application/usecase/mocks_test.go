package usecase

import (
	"context"
	"time"

	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/domain/entity"
)

type mockUserRepository struct {
	users map[string]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*entity.User)}
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, ok := m.users[user.ID]; ok {
		return outbound.ErrUserAlreadyExists
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	user, ok := m.users[id]
	if !ok {
		return outbound.ErrUserNotFound
	}
	user.HashedPassword = hashedPassword
	return nil
}

type mockMailSender struct {
	sentTo    []string
	lastToken string
	err       error
}

func (m *mockMailSender) SendPasswordReset(ctx context.Context, email, token string) error {
	if m.err != nil {
		return m.err
	}
	m.sentTo = append(m.sentTo, email)
	m.lastToken = token
	return nil
}

type mockRateLimitService struct {
	allowed    bool
	blocked    bool
	increments int
}

func newMockRateLimitService() *mockRateLimitService {
	return &mockRateLimitService{allowed: true}
}

func (m *mockRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return m.allowed, nil
}

func (m *mockRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	m.increments++
	return nil
}

func (m *mockRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	m.blocked = true
	return nil
}

func (m *mockRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return m.blocked, nil
}

type mockGrantIssuer struct {
	lastIdentity string
	err          error
}

func (m *mockGrantIssuer) IssueGrantToken(identity string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.lastIdentity = identity
	return "grant-token-for-" + identity, nil
}
