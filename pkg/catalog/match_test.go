package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSpawns(t *testing.T) {
	spawns := []Spawn{
		{Name: "vulpix", Bucket: "common"},
		{Name: "Vulpix", Bucket: "rare"},
		{Name: "vulpix alolan", Bucket: "uncommon"},
		{Name: "ninetales alolan", Bucket: "rare"},
	}

	assert.Equal(t, []Spawn{}, MatchSpawns(spawns, "", true))
	assert.Equal(t, []Spawn{}, MatchSpawns(spawns, "", false))
	assert.Equal(t, []Spawn{}, MatchSpawns(nil, "vulpix", true))

	strict := MatchSpawns(spawns, "VULPIX", true)
	assert.Equal(t, spawns[:2], strict, "strict matching ignores case but needs the whole name")

	loose := MatchSpawns(spawns, "alolan", false)
	assert.Equal(t, spawns[2:], loose)

	assert.Empty(t, MatchSpawns(spawns, "Alolan", false), "loose matching is case-sensitive")
	assert.Empty(t, MatchSpawns(spawns, "shiny", false))
}
