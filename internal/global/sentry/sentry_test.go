package sentry

import (
	"errors"
	"testing"

	"hackathon-vote-system/internal/global/response"

	"github.com/stretchr/testify/require"
)

func TestShouldReport(t *testing.T) {
	require.False(t, ShouldReport(nil))
	require.False(t, ShouldReport(response.ErrAlreadyVoted))
	require.False(t, ShouldReport(response.ErrVotingDisabled.WithTips("x")))
	require.True(t, ShouldReport(response.ErrDatabase.WithOrigin(errors.New("conn reset"))))
	require.True(t, ShouldReport(errors.New("plain")))
}
