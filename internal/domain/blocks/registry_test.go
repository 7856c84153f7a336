package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsClosed(t *testing.T) {
	for _, blockType := range AllTypes() {
		assert.True(t, IsKnown(blockType))
		assert.NotEmpty(t, Label(blockType))
	}

	assert.False(t, IsKnown("carousel"))
	assert.False(t, IsKnown(""))
	assert.Len(t, AllTypes(), 17)
}

func TestDefaultContentIsFreshPerCall(t *testing.T) {
	for _, blockType := range AllTypes() {
		first := DefaultContent(blockType)
		require.NotNil(t, first, "default content for %s", blockType)

		first["mutated"] = true
		second := DefaultContent(blockType)
		_, leaked := second["mutated"]
		assert.False(t, leaked, "default content for %s must not be shared", blockType)
	}

	assert.Nil(t, DefaultContent("carousel"))
}

func TestEveryLegacyTypeButSpecializedOnesIsConvertible(t *testing.T) {
	convertible := []BlockType{
		TypeHero, TypeText, TypeImage, TypeGallery, TypeFeatures,
		TypeCTA, TypeTestimonials, TypeBlogFeatured, TypeBlogGrid, TypeEmbed,
	}
	for _, blockType := range convertible {
		assert.True(t, IsConvertible(blockType), "%s", blockType)

		target, ok := ConversionTargetFor(blockType)
		require.True(t, ok)
		assert.True(t, IsKnown(target.TargetType))
		assert.NotEmpty(t, target.PresetField)
		assert.NotEmpty(t, target.PresetValue)
	}

	// Specialized and unified types stay as they are.
	for _, blockType := range []BlockType{
		TypeHeader, TypeFooter, TypeContact,
		TypeHeroPrimitive, TypeCards, TypeMedia, TypeBlog,
	} {
		assert.False(t, IsConvertible(blockType), "%s", blockType)
		_, ok := ConversionTargetFor(blockType)
		assert.False(t, ok)
	}
}

func TestConversionTargetsAreUnifiedPrimitives(t *testing.T) {
	unified := map[BlockType]bool{
		TypeHeroPrimitive: true,
		TypeCards:         true,
		TypeMedia:         true,
		TypeBlog:          true,
	}
	for _, blockType := range AllTypes() {
		target, ok := ConversionTargetFor(blockType)
		if !ok {
			continue
		}
		assert.True(t, unified[target.TargetType],
			"%s must convert to a unified primitive, got %s", blockType, target.TargetType)
	}
}
