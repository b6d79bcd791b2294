package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/dependencies/mocks"
	"github.com/mcoot/rockquest-admin/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.clock = mocks.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, DefaultConfig(), s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) session(id string, ttl time.Duration) *model.Session {
	now := s.clock.Now()
	return &model.Session{
		ID:          model.SessionID(id),
		Email:       "admin@rockquest.test",
		Subject:     "admin-1",
		SealedToken: []byte{0x01, 0x02, 0xff},
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	err := s.storage.SaveSession(s.ctx, s.session("sess-1", time.Hour))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.SessionID("sess-1"), retrieved.ID)
	s.Equal("admin-1", retrieved.Subject)
	s.Equal([]byte{0x01, 0x02, 0xff}, retrieved.SealedToken)
	s.True(retrieved.ExpiresAt.Equal(s.clock.Now().Add(time.Hour)))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionKeyUsesPrefix() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", time.Hour)))
	s.True(s.mini.Exists("rqadmin:session:sess-1"))
}

func (s *StorageSuite) TestSessionTTLMatchesExpiry() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", 90*time.Minute)))
	s.Equal(90*time.Minute, s.mini.TTL("rqadmin:session:sess-1"))
}

func (s *StorageSuite) TestSessionExpiresInRedis() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", time.Minute)))

	s.mini.FastForward(2 * time.Minute)

	_, err := s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveExpiredSessionDeletesIt() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", time.Hour)))

	s.clock.Advance(2 * time.Hour)
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", -time.Minute)))

	s.False(s.mini.Exists("rqadmin:session:sess-1"))
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session("sess-1", time.Hour)))

	err := s.storage.DeleteSession(s.ctx, "sess-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
