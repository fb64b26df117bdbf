package ctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageRefString(t *testing.T) {
	assert.Equal(t, "-", (*PackageRef)(nil).String())
	assert.Equal(t, "-", (&PackageRef{}).String())
	assert.Equal(t, "core/redis", (&PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}).String())
	assert.Equal(t, "core/redis/4.0.14/20180801005930", fullyQualifiedIdent().String())
}
