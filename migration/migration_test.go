package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Migrators_Registered(t *testing.T) {
	for _, version := range []string{"latest", "auto", "0000", "0001"} {
		require.Contains(t, Migrators, version)
	}
}

func Test_MigrationsTempDir(t *testing.T) {
	dir, err := MigrationsTempDir()
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.Contains(t, names, "000001_init.up.sql")
	require.Contains(t, names, "000001_init.down.sql")
}
