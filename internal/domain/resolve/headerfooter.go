// Package resolve merges site-level header and footer content with
// page-level header and footer sections. Shared fields (site name, logo,
// navigation, copyright) are authoritative at the site level; style fields
// come from the page level only when the matching override flag is set.
// Merging is pure and never mutates stored rows.
package resolve

import (
	"fmt"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
)

// FindSpecialized returns the first header and footer section of an ordered
// section list. Either return can be nil when the page carries none.
func FindSpecialized(sections []*content.SectionNode) (header, footer *content.SectionNode) {
	for _, section := range sections {
		switch blocks.BlockType(section.BlockType) {
		case blocks.TypeHeader:
			if header == nil {
				header = section
			}
		case blocks.TypeFooter:
			if footer == nil {
				footer = section
			}
		}
	}
	return header, footer
}

// Header merges site-level header content with a page-level header payload.
// A nil siteContent returns the page payload unmodified; a nil pageContent
// returns the site payload unmodified.
func Header(siteContent, pageContent map[string]any) (map[string]any, error) {
	if siteContent == nil && pageContent == nil {
		return blocks.DefaultContent(blocks.TypeHeader), nil
	}
	if siteContent == nil {
		return copyContent(pageContent), nil
	}
	if pageContent == nil {
		return copyContent(siteContent), nil
	}

	var site, page blocks.HeaderContent
	if err := blocks.Decode(siteContent, &site); err != nil {
		return nil, fmt.Errorf("failed to decode site header content: %w", err)
	}
	if err := blocks.Decode(pageContent, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page header content: %w", err)
	}

	merged := site
	if page.OverrideLayout {
		merged.Layout = page.Layout
	}
	if page.OverrideSticky {
		merged.Sticky = page.Sticky
	}
	if page.OverrideShowLogoText {
		merged.ShowLogoText = page.ShowLogoText
	}
	if page.OverrideShowButton {
		merged.ShowButton = page.ShowButton
		merged.ButtonLabel = page.ButtonLabel
		merged.ButtonURL = page.ButtonURL
	}
	merged.OverrideLayout = page.OverrideLayout
	merged.OverrideSticky = page.OverrideSticky
	merged.OverrideShowLogoText = page.OverrideShowLogoText
	merged.OverrideShowButton = page.OverrideShowButton
	return blocks.Encode(merged), nil
}

// Footer merges site-level footer content with a page-level footer payload
// under the same precedence rules as Header.
func Footer(siteContent, pageContent map[string]any) (map[string]any, error) {
	if siteContent == nil && pageContent == nil {
		return blocks.DefaultContent(blocks.TypeFooter), nil
	}
	if siteContent == nil {
		return copyContent(pageContent), nil
	}
	if pageContent == nil {
		return copyContent(siteContent), nil
	}

	var site, page blocks.FooterContent
	if err := blocks.Decode(siteContent, &site); err != nil {
		return nil, fmt.Errorf("failed to decode site footer content: %w", err)
	}
	if err := blocks.Decode(pageContent, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page footer content: %w", err)
	}

	merged := site
	if page.OverrideLayout {
		merged.Layout = page.Layout
	}
	merged.OverrideLayout = page.OverrideLayout
	return blocks.Encode(merged), nil
}

// copyContent returns a fresh top-level map so callers never alias stored
// payloads.
func copyContent(content map[string]any) map[string]any {
	if content == nil {
		return nil
	}
	copied := make(map[string]any, len(content))
	for key, value := range content {
		copied[key] = value
	}
	return copied
}
