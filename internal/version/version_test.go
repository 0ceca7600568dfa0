package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWithoutCommit(t *testing.T) {
	assert.Equal(t, Version, String())
}

func TestStringWithBuildMetadata(t *testing.T) {
	prevVersion, prevCommit, prevTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = prevVersion, prevCommit, prevTime })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2024-05-01"
	assert.Equal(t, "v1.2.3 (abc123, built 2024-05-01)", String())
}
