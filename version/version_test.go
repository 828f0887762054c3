package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	Version, Commit = "", ""
	assert.Equal(t, "dev", String())

	Version = "v0.3.1"
	assert.Equal(t, "v0.3.1", String())

	Commit = "abc1234"
	assert.Equal(t, "v0.3.1 (abc1234)", String())
}
