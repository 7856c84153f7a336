// Package blocks defines the closed block-type enumeration, the content shape
// registered for each type, default-content generators, and the conversion
// targets that point deprecated types at their unified successors.
package blocks

// BlockType tags a section's content shape.
type BlockType string

// Legacy block types.
const (
	TypeHeader       BlockType = "header"
	TypeHero         BlockType = "hero"
	TypeText         BlockType = "text"
	TypeImage        BlockType = "image"
	TypeGallery      BlockType = "gallery"
	TypeFeatures     BlockType = "features"
	TypeCTA          BlockType = "cta"
	TypeTestimonials BlockType = "testimonials"
	TypeContact      BlockType = "contact"
	TypeFooter       BlockType = "footer"
	TypeBlogFeatured BlockType = "blog_featured"
	TypeBlogGrid     BlockType = "blog_grid"
	TypeEmbed        BlockType = "embed"
)

// Unified primitive block types. Several legacy types converge into each of
// these, distinguished by a preset discriminator inside the content payload.
const (
	TypeHeroPrimitive BlockType = "hero_primitive"
	TypeCards         BlockType = "cards"
	TypeMedia         BlockType = "media"
	TypeBlog          BlockType = "blog"
)

// ConversionTarget describes where a deprecated block type migrates to.
type ConversionTarget struct {
	TargetType BlockType `json:"targetType"`
	// PresetField and PresetValue name the discriminator carried inside the
	// successor's content (e.g. layout="banner" on hero_primitive).
	PresetField string `json:"presetField"`
	PresetValue string `json:"presetValue"`
	Label       string `json:"label"`
}

// Definition is the registry entry for one block type.
type Definition struct {
	Label          string
	DefaultContent func() map[string]any
	Conversion     *ConversionTarget
}

var registry = map[BlockType]Definition{
	TypeHeader: {Label: "Header", DefaultContent: defaultHeader},
	TypeHero: {
		Label:          "Hero",
		DefaultContent: defaultHero,
		Conversion:     &ConversionTarget{TargetType: TypeHeroPrimitive, PresetField: "layout", PresetValue: "hero", Label: "Hero"},
	},
	TypeText: {
		Label:          "Text",
		DefaultContent: defaultText,
		Conversion:     &ConversionTarget{TargetType: TypeHeroPrimitive, PresetField: "layout", PresetValue: "text", Label: "Text"},
	},
	TypeImage: {
		Label:          "Image",
		DefaultContent: defaultImage,
		Conversion:     &ConversionTarget{TargetType: TypeMedia, PresetField: "kind", PresetValue: "image", Label: "Image"},
	},
	TypeGallery: {
		Label:          "Gallery",
		DefaultContent: defaultGallery,
		Conversion:     &ConversionTarget{TargetType: TypeCards, PresetField: "template", PresetValue: "gallery", Label: "Gallery"},
	},
	TypeFeatures: {
		Label:          "Features",
		DefaultContent: defaultFeatures,
		Conversion:     &ConversionTarget{TargetType: TypeCards, PresetField: "template", PresetValue: "features", Label: "Features"},
	},
	TypeCTA: {
		Label:          "Call to Action",
		DefaultContent: defaultCTA,
		Conversion:     &ConversionTarget{TargetType: TypeHeroPrimitive, PresetField: "layout", PresetValue: "banner", Label: "Call to Action"},
	},
	TypeTestimonials: {
		Label:          "Testimonials",
		DefaultContent: defaultTestimonials,
		Conversion:     &ConversionTarget{TargetType: TypeCards, PresetField: "template", PresetValue: "testimonials", Label: "Testimonials"},
	},
	TypeContact: {Label: "Contact", DefaultContent: defaultContact},
	TypeFooter:  {Label: "Footer", DefaultContent: defaultFooter},
	TypeBlogFeatured: {
		Label:          "Featured Post",
		DefaultContent: defaultBlogFeatured,
		Conversion:     &ConversionTarget{TargetType: TypeBlog, PresetField: "template", PresetValue: "featured", Label: "Featured Post"},
	},
	TypeBlogGrid: {
		Label:          "Post Grid",
		DefaultContent: defaultBlogGrid,
		Conversion:     &ConversionTarget{TargetType: TypeBlog, PresetField: "template", PresetValue: "grid", Label: "Post Grid"},
	},
	TypeEmbed: {
		Label:          "Embed",
		DefaultContent: defaultEmbed,
		Conversion:     &ConversionTarget{TargetType: TypeMedia, PresetField: "kind", PresetValue: "embed", Label: "Embed"},
	},

	TypeHeroPrimitive: {Label: "Hero", DefaultContent: defaultHeroPrimitive},
	TypeCards:         {Label: "Cards", DefaultContent: defaultCards},
	TypeMedia:         {Label: "Media", DefaultContent: defaultMedia},
	TypeBlog:          {Label: "Blog", DefaultContent: defaultBlog},
}

// IsKnown reports whether blockType is part of the closed enumeration.
func IsKnown(blockType BlockType) bool {
	_, ok := registry[blockType]
	return ok
}

// AllTypes returns every registered block type.
func AllTypes() []BlockType {
	types := make([]BlockType, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}

// Label returns the human-readable label for a block type.
func Label(blockType BlockType) string {
	return registry[blockType].Label
}

// DefaultContent returns a fresh default content payload for blockType, or
// nil for an unknown type. The returned map is never shared.
func DefaultContent(blockType BlockType) map[string]any {
	def, ok := registry[blockType]
	if !ok {
		return nil
	}
	return def.DefaultContent()
}

// IsConvertible reports whether blockType has a designated unified successor.
func IsConvertible(blockType BlockType) bool {
	def, ok := registry[blockType]
	return ok && def.Conversion != nil
}

// ConversionTargetFor returns the conversion target for a deprecated block
// type. The second return is false when the type is not convertible.
func ConversionTargetFor(blockType BlockType) (ConversionTarget, bool) {
	def, ok := registry[blockType]
	if !ok || def.Conversion == nil {
		return ConversionTarget{}, false
	}
	return *def.Conversion, true
}
