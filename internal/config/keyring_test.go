package config

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func newTestKeyring(t *testing.T) *KeyringManager {
	t.Helper()
	keyring.MockInit()
	logger, _ := test.NewNullLogger()
	return NewKeyringManager(logger)
}

func TestKeyringManager_RoundTrip(t *testing.T) {
	km := newTestKeyring(t)
	assert.True(t, km.IsAvailable())

	password, err := km.GetNeo4jPassword("reader")
	require.NoError(t, err)
	assert.Empty(t, password)

	require.NoError(t, km.SaveNeo4jPassword("reader", "s3cret"))

	password, err = km.GetNeo4jPassword("reader")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)

	other, err := km.GetNeo4jPassword("writer")
	require.NoError(t, err)
	assert.Empty(t, other, "passwords are stored per user")

	require.NoError(t, km.DeleteNeo4jPassword("reader"))
	require.NoError(t, km.DeleteNeo4jPassword("reader"), "deleting twice is not an error")

	password, err = km.GetNeo4jPassword("reader")
	require.NoError(t, err)
	assert.Empty(t, password)
}

func TestKeyringManager_RejectsEmpty(t *testing.T) {
	km := newTestKeyring(t)
	assert.Error(t, km.SaveNeo4jPassword("", "x"))
	assert.Error(t, km.SaveNeo4jPassword("reader", ""))
}

func TestLoad_PasswordFromKeychain(t *testing.T) {
	km := newTestKeyring(t)
	require.NoError(t, km.SaveNeo4jPassword("reader", "from-keychain"))
	t.Setenv("NEO4J_PASSWORD", "")
	t.Setenv("RECIPES_NEO4J_PASSWORD", "")

	path := writeConfig(t, "neo4j:\n  user: reader\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-keychain", cfg.Neo4j.Password)
	assert.Equal(t, PasswordSourceKeychain, DescribePasswordSource(cfg, km))

	path = writeConfig(t, "neo4j:\n  user: reader\n  use_keychain: false\n")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Neo4j.Password)
	assert.Equal(t, PasswordSourceNone, DescribePasswordSource(cfg, km))
}

func TestLoad_ConfigPasswordWinsOverKeychain(t *testing.T) {
	km := newTestKeyring(t)
	require.NoError(t, km.SaveNeo4jPassword("reader", "from-keychain"))
	t.Setenv("NEO4J_PASSWORD", "")
	t.Setenv("RECIPES_NEO4J_PASSWORD", "")

	cfg, err := Load(writeConfig(t, "neo4j:\n  user: reader\n  password: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Neo4j.Password)
	assert.Equal(t, PasswordSourceConfig, DescribePasswordSource(cfg, km))
}
