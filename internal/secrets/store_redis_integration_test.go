//go:build integration

package secrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"idrelay/internal/secrets"
	"idrelay/pkg/platform/sentinel"
	"idrelay/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *secrets.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = secrets.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestGet() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "idrelay:secret:idp/us/signing-key", "us-secret", 0).Err())

	value, err := s.store.Get(ctx, "idp/us/signing-key")
	s.Require().NoError(err)
	s.Equal("us-secret", value)
}

func (s *RedisStoreSuite) TestGetMissingIsNotFound() {
	_, err := s.store.Get(context.Background(), "idp/eu/signing-key")
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
