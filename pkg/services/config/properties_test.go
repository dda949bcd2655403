package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRegistry_GetProperties(t *testing.T) {
	path := writeRegistryFile(t, `
[shop]
property_id = 272846783
profile = /etc/traffic-atlas/shop.yml

[blog]
property_id = 310022911
profile = /etc/traffic-atlas/blog.yml
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	properties, err := registry.GetProperties(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shop", "blog"}, properties)
}

func TestRegistry_GetProperty(t *testing.T) {
	path := writeRegistryFile(t, `
[shop]
property_id = 272846783
profile = /etc/traffic-atlas/shop.yml

[incomplete]
property_id = 1
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)
	ctx := context.Background()

	property, err := registry.GetProperty(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, "272846783", property.PropertyID)
	assert.Equal(t, "/etc/traffic-atlas/shop.yml", property.ProfilePath)

	_, err = registry.GetProperty(ctx, "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = registry.GetProperty(ctx, "incomplete")
	assert.ErrorContains(t, err, "no profile path")
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}
