package migration

import (
	"testing"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCTAPreservesFields(t *testing.T) {
	legacy := map[string]any{
		"heading":     "Ready to launch?",
		"description": "Start your free trial today.",
		"buttonLabel": "Get Started",
		"buttonUrl":   "/signup",
		"background":  "brand",
	}

	target, converted, err := Convert(blocks.TypeCTA, legacy)
	require.NoError(t, err)

	assert.Equal(t, blocks.TypeHeroPrimitive, target)
	assert.Equal(t, "banner", converted["layout"])
	assert.Equal(t, "Ready to launch?", converted["heading"])
	assert.Equal(t, "Start your free trial today.", converted["description"])
	assert.Equal(t, "Get Started", converted["buttonLabel"])
	assert.Equal(t, "/signup", converted["buttonUrl"])
	assert.Equal(t, "brand", converted["background"])
}

func TestConvertHeroOverlayMapping(t *testing.T) {
	target, converted, err := Convert(blocks.TypeHero, map[string]any{
		"heading": "Welcome",
		"overlay": true,
	})
	require.NoError(t, err)
	assert.Equal(t, blocks.TypeHeroPrimitive, target)
	assert.Equal(t, "hero", converted["layout"])
	assert.Equal(t, "dark", converted["overlay"])

	_, converted, err = Convert(blocks.TypeHero, map[string]any{"overlay": false})
	require.NoError(t, err)
	assert.Equal(t, "none", converted["overlay"])
}

func TestConvertImageBorderMapping(t *testing.T) {
	target, converted, err := Convert(blocks.TypeImage, map[string]any{
		"src":    "/img/team.jpg",
		"alt":    "The team",
		"border": true,
	})
	require.NoError(t, err)
	assert.Equal(t, blocks.TypeMedia, target)
	assert.Equal(t, "image", converted["kind"])
	assert.Equal(t, "/img/team.jpg", converted["src"])
	assert.Equal(t, "solid", converted["border"])
}

func TestConvertBlogCountFloors(t *testing.T) {
	_, converted, err := Convert(blocks.TypeBlogFeatured, map[string]any{"heading": "News"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), converted["postCount"])

	_, converted, err = Convert(blocks.TypeBlogGrid, map[string]any{"heading": "News"})
	require.NoError(t, err)
	assert.Equal(t, float64(6), converted["postCount"])
}

func TestConvertListItemsGetFreshIDs(t *testing.T) {
	legacy := map[string]any{
		"heading": "What customers say",
		"items": []any{
			map[string]any{"quote": "Great.", "author": "Ada", "role": "CTO"},
			map[string]any{"quote": "Love it.", "author": "Lin"},
		},
	}

	target, converted, err := Convert(blocks.TypeTestimonials, legacy)
	require.NoError(t, err)
	assert.Equal(t, blocks.TypeCards, target)
	assert.Equal(t, "testimonials", converted["template"])

	items, ok := converted["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	ids := make(map[string]bool)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		require.True(t, ok)
		id, _ := item["id"].(string)
		require.NotEmpty(t, id)
		require.False(t, ids[id], "item ids must be distinct")
		ids[id] = true
	}

	first := items[0].(map[string]any)
	assert.Equal(t, "Ada", first["title"])
	assert.Equal(t, "CTO", first["subtitle"])
	assert.Equal(t, "Great.", first["body"])
}

func TestConvertDoesNotMutateInput(t *testing.T) {
	legacy := map[string]any{
		"heading": "Features",
		"items": []any{
			map[string]any{"title": "Fast", "description": "Really fast.", "icon": "bolt"},
		},
	}

	_, _, err := Convert(blocks.TypeFeatures, legacy)
	require.NoError(t, err)

	assert.Equal(t, "Features", legacy["heading"])
	item := legacy["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Fast", item["title"])
	_, hasID := item["id"]
	assert.False(t, hasID, "legacy items must not gain ids in place")
}

func TestConvertCoversEveryConvertibleType(t *testing.T) {
	for _, blockType := range blocks.AllTypes() {
		target, ok := blocks.ConversionTargetFor(blockType)
		if !ok {
			continue
		}

		resultType, converted, err := Convert(blockType, blocks.DefaultContent(blockType))
		require.NoError(t, err, "conversion for %s", blockType)
		assert.Equal(t, target.TargetType, resultType, "target for %s", blockType)
		assert.Equal(t, target.PresetValue, converted[target.PresetField],
			"preset discriminator for %s", blockType)
	}
}

func TestConvertRejectsNonConvertibleTypes(t *testing.T) {
	for _, blockType := range []blocks.BlockType{
		blocks.TypeHeader, blocks.TypeFooter, blocks.TypeContact,
		blocks.TypeHeroPrimitive, blocks.TypeCards, blocks.TypeMedia, blocks.TypeBlog,
		"unknown",
	} {
		_, _, err := Convert(blockType, map[string]any{})
		assert.Error(t, err, "block type %s", blockType)
	}
}
