// Package migration converts deprecated block content payloads into the
// content shape of their designated unified successor type. Conversions are
// pure: the input payload is never mutated, every field present in both
// shapes is copied 1:1, and successor-only styling fields default to their
// neutral values.
package migration

import (
	"fmt"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/oklog/ulid/v2"
)

// IsConvertible reports whether blockType has a designated successor.
func IsConvertible(blockType blocks.BlockType) bool {
	return blocks.IsConvertible(blockType)
}

// ConversionTarget returns the successor descriptor for a deprecated type.
func ConversionTarget(blockType blocks.BlockType) (blocks.ConversionTarget, error) {
	target, ok := blocks.ConversionTargetFor(blockType)
	if !ok {
		return blocks.ConversionTarget{}, fmt.Errorf("block type %q is not convertible", blockType)
	}
	return target, nil
}

// Convert transforms a legacy content payload into the successor's shape and
// returns the successor type alongside the new payload.
func Convert(blockType blocks.BlockType, content map[string]any) (blocks.BlockType, map[string]any, error) {
	target, ok := blocks.ConversionTargetFor(blockType)
	if !ok {
		return "", nil, fmt.Errorf("block type %q is not convertible", blockType)
	}

	var (
		converted map[string]any
		err       error
	)
	switch blockType {
	case blocks.TypeHero:
		converted, err = convertHero(content)
	case blocks.TypeCTA:
		converted, err = convertCTA(content)
	case blocks.TypeText:
		converted, err = convertText(content)
	case blocks.TypeFeatures:
		converted, err = convertFeatures(content)
	case blocks.TypeTestimonials:
		converted, err = convertTestimonials(content)
	case blocks.TypeGallery:
		converted, err = convertGallery(content)
	case blocks.TypeImage:
		converted, err = convertImage(content)
	case blocks.TypeEmbed:
		converted, err = convertEmbed(content)
	case blocks.TypeBlogFeatured:
		converted, err = convertBlogFeatured(content)
	case blocks.TypeBlogGrid:
		converted, err = convertBlogGrid(content)
	default:
		return "", nil, fmt.Errorf("no conversion implemented for block type %q", blockType)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to convert %q content: %w", blockType, err)
	}
	return target.TargetType, converted, nil
}

func convertHero(content map[string]any) (map[string]any, error) {
	var legacy blocks.HeroContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	overlay := "none"
	if legacy.Overlay {
		overlay = "dark"
	}
	return blocks.Encode(blocks.HeroPrimitiveContent{
		Layout:      "hero",
		Heading:     legacy.Heading,
		Description: legacy.Subheading,
		ButtonLabel: legacy.ButtonLabel,
		ButtonURL:   legacy.ButtonURL,
		ImageSrc:    legacy.ImageSrc,
		ImageAlt:    legacy.ImageAlt,
		Overlay:     overlay,
		Background:  orDefault(legacy.Background, "auto"),
		Align:       "left",
	}), nil
}

func convertCTA(content map[string]any) (map[string]any, error) {
	var legacy blocks.CTAContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	return blocks.Encode(blocks.HeroPrimitiveContent{
		Layout:      "banner",
		Heading:     legacy.Heading,
		Description: legacy.Description,
		ButtonLabel: legacy.ButtonLabel,
		ButtonURL:   legacy.ButtonURL,
		Overlay:     "none",
		Background:  orDefault(legacy.Background, "auto"),
		Align:       "center",
	}), nil
}

func convertText(content map[string]any) (map[string]any, error) {
	var legacy blocks.TextContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	return blocks.Encode(blocks.HeroPrimitiveContent{
		Layout:      "text",
		Description: legacy.Body,
		Overlay:     "none",
		Background:  "auto",
		Align:       orDefault(legacy.Align, "left"),
	}), nil
}

func convertFeatures(content map[string]any) (map[string]any, error) {
	var legacy blocks.FeaturesContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	items := make([]blocks.CardItem, len(legacy.Items))
	for i, item := range legacy.Items {
		items[i] = blocks.CardItem{
			ID:    newItemID(),
			Title: item.Title,
			Body:  item.Description,
			Icon:  item.Icon,
		}
	}
	return blocks.Encode(blocks.CardsContent{
		Template: "features",
		Heading:  legacy.Heading,
		Items:    items,
		Columns:  "auto",
		Border:   "none",
	}), nil
}

func convertTestimonials(content map[string]any) (map[string]any, error) {
	var legacy blocks.TestimonialsContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	items := make([]blocks.CardItem, len(legacy.Items))
	for i, item := range legacy.Items {
		items[i] = blocks.CardItem{
			ID:       newItemID(),
			Title:    item.Author,
			Subtitle: item.Role,
			Body:     item.Quote,
			ImageSrc: item.AvatarSrc,
		}
	}
	return blocks.Encode(blocks.CardsContent{
		Template: "testimonials",
		Heading:  legacy.Heading,
		Items:    items,
		Columns:  "auto",
		Border:   "none",
	}), nil
}

func convertGallery(content map[string]any) (map[string]any, error) {
	var legacy blocks.GalleryContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	items := make([]blocks.CardItem, len(legacy.Images))
	for i, image := range legacy.Images {
		items[i] = blocks.CardItem{
			ID:       newItemID(),
			Body:     image.Caption,
			ImageSrc: image.Src,
			ImageAlt: image.Alt,
		}
	}
	return blocks.Encode(blocks.CardsContent{
		Template: "gallery",
		Heading:  legacy.Heading,
		Items:    items,
		Columns:  "auto",
		Border:   "none",
	}), nil
}

func convertImage(content map[string]any) (map[string]any, error) {
	var legacy blocks.ImageContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	border := "none"
	if legacy.Border {
		border = "solid"
	}
	return blocks.Encode(blocks.MediaContent{
		Kind:        "image",
		Src:         legacy.Src,
		Alt:         legacy.Alt,
		Caption:     legacy.Caption,
		AspectRatio: "auto",
		Border:      border,
	}), nil
}

func convertEmbed(content map[string]any) (map[string]any, error) {
	var legacy blocks.EmbedContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	return blocks.Encode(blocks.MediaContent{
		Kind:        "embed",
		URL:         legacy.URL,
		HTML:        legacy.HTML,
		AspectRatio: orDefault(legacy.AspectRatio, "auto"),
		Border:      "none",
	}), nil
}

func convertBlogFeatured(content map[string]any) (map[string]any, error) {
	var legacy blocks.BlogFeaturedContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	postCount := legacy.PostCount
	if postCount < 1 {
		postCount = 1
	}
	return blocks.Encode(blocks.BlogContent{
		Template:  "featured",
		Heading:   legacy.Heading,
		PostCount: postCount,
	}), nil
}

func convertBlogGrid(content map[string]any) (map[string]any, error) {
	var legacy blocks.BlogGridContent
	if err := blocks.Decode(content, &legacy); err != nil {
		return nil, err
	}
	postCount := legacy.PostCount
	if postCount < 1 {
		postCount = 6
	}
	return blocks.Encode(blocks.BlogContent{
		Template:     "grid",
		Heading:      legacy.Heading,
		PostCount:    postCount,
		ShowExcerpts: legacy.ShowExcerpts,
	}), nil
}

// newItemID synthesizes a stable identifier for a list item that previously
// had none. Each call returns a distinct id.
func newItemID() string {
	return ulid.Make().String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
