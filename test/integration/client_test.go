//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/fivetwenty-io/sparkle/pkg/sparkleclient"
	"github.com/stretchr/testify/suite"
)

// ClientTestSuite runs the library against a live API
type ClientTestSuite struct {
	suite.Suite

	config     *TestConfig
	client     sparkle.Client
	collection sparkle.Collection
	key        string
}

func (s *ClientTestSuite) SetupSuite() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingConfig(s.T())

	client, err := sparkleclient.NewWithToken(context.Background(), s.config.API, s.config.Token)
	s.Require().NoError(err)

	collection, ok := client.Collection(s.config.Collection)
	s.Require().True(ok, "collection %s not in schema", s.config.Collection)

	s.client = client
	s.collection = collection
}

func (s *ClientTestSuite) SetupTest() {
	s.key = GenerateTestName("lib")

	_, err := s.collection.Post(context.Background(), s.config.EntityData(s.collection.Schema().PrimaryKey, s.key))
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	_, _ = s.collection.Entity(s.key).Delete(context.Background())
}

func (s *ClientTestSuite) TestStateHasKey() {
	rep, err := s.collection.Entity(s.key).State(context.Background())
	s.Require().NoError(err)

	key, ok := s.collection.KeyOf(rep)
	s.Require().True(ok)
	s.Equal(s.key, key)
}

func (s *ClientTestSuite) TestListed() {
	entities, err := s.collection.List(context.Background())
	s.Require().NoError(err)

	uris := make([]string, 0, len(entities))
	for _, entity := range entities {
		uris = append(uris, entity.URI())
	}

	s.Contains(uris, s.collection.Entity(s.key).URI())
}

func (s *ClientTestSuite) TestDuplicateCreateConflicts() {
	_, err := s.collection.Post(context.Background(), s.config.EntityData(s.collection.Schema().PrimaryKey, s.key))
	s.Require().Error(err)
	s.True(sparkle.IsDataError(err) || sparkle.IsUserError(err), "unexpected error: %v", err)
}

func (s *ClientTestSuite) TestMissingEntity() {
	_, err := s.collection.Entity(s.key + "-missing").Desired(context.Background())
	s.True(sparkle.IsNotFound(err), "unexpected error: %v", err)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
