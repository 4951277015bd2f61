package redisstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/tokens/redisstore"
	"github.com/jrsteele09/wave-console/tokens/storetest"
	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	store     *redisstore.Store
}

func (s *RedisStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	store, err := redisstore.Connect(s.ctx, redisstore.Config{
		Addr:   fmt.Sprintf("%s:%s", host, port.Port()),
		Prefix: "test:",
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.Require().NoError(s.store.Clear(s.ctx))
}

func (s *RedisStoreTestSuite) TestReadMissing() {
	_, err := s.store.Read(s.ctx, tokens.Access)
	s.ErrorIs(err, errors.ErrTokenNotFound)
}

func (s *RedisStoreTestSuite) TestWriteReadClear() {
	s.Require().NoError(s.store.Write(s.ctx, tokens.Pair{AccessToken: "A", RefreshToken: "R"}))

	p, err := tokens.ReadPair(s.ctx, s.store)
	s.Require().NoError(err)
	s.Equal(tokens.Pair{AccessToken: "A", RefreshToken: "R"}, p)

	s.Require().NoError(s.store.Write(s.ctx, tokens.Pair{AccessToken: "A2", RefreshToken: "R"}))
	access, err := s.store.Read(s.ctx, tokens.Access)
	s.Require().NoError(err)
	s.Equal("A2", access)

	s.Require().NoError(s.store.Clear(s.ctx))
	s.False(tokens.HasAccessToken(s.ctx, s.store))
}

func (s *RedisStoreTestSuite) TestEmptyValues() {
	storetest.EmptyValuesAreAbsent(s.T(), s.store)
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("redis container test skipped in -short mode")
	}
	tContainer.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(RedisStoreTestSuite))
}
