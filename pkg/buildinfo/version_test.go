package buildinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplate(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.2.3"

	assert.True(t, strings.HasPrefix(Template(), "{{.Name}} version v1.2.3\n"))
	assert.Contains(t, String(), "version: v1.2.3")
	assert.Equal(t, "pepystats/v1.2.3", UserAgent())
}
