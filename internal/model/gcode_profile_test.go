package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProfileFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, "Generic", GetProfile("NonExistent").Name)
}

func TestGetProfileFindsBuiltIn(t *testing.T) {
	p := GetProfile("Fanuc")
	assert.Equal(t, "(", p.CommentPrefix)
	assert.Equal(t, ")", p.CommentSuffix)
}

func TestGetProfileNames(t *testing.T) {
	assert.Equal(t, []string{"Grbl", "Fanuc", "Generic"}, GetProfileNames())
}

func TestFindProfilePrefersCustom(t *testing.T) {
	custom := []GCodeProfile{{Name: "Grbl", CommentPrefix: "#"}, {Name: "Shop", DecimalPlaces: 2}}

	assert.Equal(t, "#", FindProfile("Grbl", custom).CommentPrefix)
	assert.Equal(t, 2, FindProfile("Shop", custom).DecimalPlaces)
	assert.Equal(t, "Fanuc", FindProfile("Fanuc", custom).Name)
	assert.Equal(t, "Generic", FindProfile("Missing", nil).Name)
}
