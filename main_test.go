package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"serve", "migrate", "create-admin"}, names)
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"create-admin", "--email", "root@example.com"})
	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "password")
}
