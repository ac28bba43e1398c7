package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ModeDebug, cfg.Mode)
	require.Equal(t, 3, cfg.Voting.MaxVotesPerUser)
	require.Equal(t, VotingModeReason, cfg.Voting.Mode)
	require.True(t, cfg.Voting.Enabled)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
port: "9000"
mode: release
mysql:
  host: db.internal
voting:
  max_votes_per_user: 5
  mode: scores
`), 0o644))

	t.Setenv("VOTE_MYSQL_HOST", "db.override")

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, ModeRelease, cfg.Mode)
	require.Equal(t, "db.override", cfg.Mysql.Host)
	require.Equal(t, "3306", cfg.Mysql.Port)
	require.Equal(t, 5, cfg.Voting.MaxVotesPerUser)
	require.Equal(t, VotingModeScores, cfg.Voting.Mode)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestUnknownVotingModeFallsBackToReason(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("VOTE_VOTING_MODE", "ranked")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, VotingModeReason, cfg.Voting.Mode)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
