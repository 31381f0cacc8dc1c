package harness

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var urlPattern = regexp.MustCompile(`^https://(www\.|api\.)?[a-z.]+/[a-z]+(/|\?id=)[0-9]+$`)

func TestWorkloadShape(t *testing.T) {
	assert.Len(t, Domains, 34)
	assert.Len(t, Paths, 47)
	assert.Len(t, Patterns, 3)
}

func TestGeneratorURL(t *testing.T) {
	g := NewGenerator(7)
	for i := uint64(0); i < 500; i++ {
		url := g.URL(i)
		assert.Regexp(t, urlPattern, url)
		assert.True(t, strings.HasSuffix(url, "/"+strconv.FormatUint(i, 10)) ||
			strings.HasSuffix(url, "?id="+strconv.FormatUint(i, 10)), "%s should end with its index", url)
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	g1 := NewGenerator(99)
	g2 := NewGenerator(99)
	for i := uint64(0); i < 100; i++ {
		assert.Equal(t, g1.URL(i), g2.URL(i))
	}
}

func TestGeneratorUnique(t *testing.T) {
	g := NewGenerator(1)
	seen := make(map[string]bool)
	for i := uint64(0); i < 5000; i++ {
		url := g.URL(i)
		assert.False(t, seen[url], "%s generated twice", url)
		seen[url] = true
	}
}

func TestSection(t *testing.T) {
	assert.Equal(t, "https://www.github.com/docs", Section("https://www.github.com/docs/42"))
	assert.Equal(t, "https://github.com/docs", Section("https://github.com/docs?id=42"))
	assert.Equal(t, "https://api.github.com/docs", Section("https://api.github.com/docs/42"))
	assert.Equal(t, "https://github.com", Section("https://github.com"))
}
