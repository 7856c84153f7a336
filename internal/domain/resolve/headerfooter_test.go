package resolve

import (
	"testing"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteHeader() map[string]any {
	return blocks.Encode(blocks.HeaderContent{
		SiteName:     "Acme",
		LogoURL:      "/logo.svg",
		Links:        []blocks.NavLink{{Label: "Home", URL: "/"}},
		Layout:       "standard",
		Sticky:       true,
		ShowLogoText: true,
		ShowButton:   true,
		ButtonLabel:  "Sign up",
		ButtonURL:    "/signup",
	})
}

func TestFindSpecializedReturnsFirstOfEach(t *testing.T) {
	sections := []*content.SectionNode{
		{ID: "h1", BlockType: "header"},
		{ID: "t1", BlockType: "text"},
		{ID: "f1", BlockType: "footer"},
		{ID: "h2", BlockType: "header"},
		{ID: "f2", BlockType: "footer"},
	}

	header, footer := FindSpecialized(sections)
	require.NotNil(t, header)
	require.NotNil(t, footer)
	assert.Equal(t, "h1", header.ID)
	assert.Equal(t, "f1", footer.ID)
}

func TestFindSpecializedWithoutMatches(t *testing.T) {
	header, footer := FindSpecialized([]*content.SectionNode{
		{ID: "t1", BlockType: "text"},
	})
	assert.Nil(t, header)
	assert.Nil(t, footer)
}

func TestHeaderSiteFieldsAlwaysWin(t *testing.T) {
	page := blocks.Encode(blocks.HeaderContent{
		SiteName: "Stale Name",
		Links:    []blocks.NavLink{{Label: "Old", URL: "/old"}},
		Layout:   "centered",
	})

	merged, err := Header(siteHeader(), page)
	require.NoError(t, err)

	assert.Equal(t, "Acme", merged["siteName"])
	assert.Equal(t, "/logo.svg", merged["logoUrl"])
	links := merged["links"].([]any)
	require.Len(t, links, 1)
	assert.Equal(t, "Home", links[0].(map[string]any)["label"])
}

func TestHeaderStyleWithoutOverrideFlagUsesSite(t *testing.T) {
	page := blocks.Encode(blocks.HeaderContent{
		Layout:         "centered",
		OverrideLayout: false,
	})

	merged, err := Header(siteHeader(), page)
	require.NoError(t, err)
	assert.Equal(t, "standard", merged["layout"])
	assert.Equal(t, true, merged["sticky"])
}

func TestHeaderStyleWithOverrideFlagUsesPage(t *testing.T) {
	page := blocks.Encode(blocks.HeaderContent{
		Layout:             "centered",
		OverrideLayout:     true,
		Sticky:             false,
		OverrideSticky:     true,
		ShowButton:         true,
		ButtonLabel:        "Book a demo",
		ButtonURL:          "/demo",
		OverrideShowButton: true,
	})

	merged, err := Header(siteHeader(), page)
	require.NoError(t, err)

	assert.Equal(t, "centered", merged["layout"])
	assert.Equal(t, false, merged["sticky"])
	assert.Equal(t, "Book a demo", merged["buttonLabel"])
	assert.Equal(t, "/demo", merged["buttonUrl"])

	// Shared fields are still site-authoritative.
	assert.Equal(t, "Acme", merged["siteName"])
}

func TestHeaderNilCases(t *testing.T) {
	site := siteHeader()
	page := blocks.Encode(blocks.HeaderContent{SiteName: "Page Only"})

	merged, err := Header(nil, page)
	require.NoError(t, err)
	assert.Equal(t, "Page Only", merged["siteName"])

	merged, err = Header(site, nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme", merged["siteName"])

	merged, err = Header(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, blocks.DefaultContent(blocks.TypeHeader), merged)
}

func TestHeaderMergeDoesNotAliasInputs(t *testing.T) {
	site := siteHeader()

	merged, err := Header(site, nil)
	require.NoError(t, err)

	merged["siteName"] = "Changed"
	assert.Equal(t, "Acme", site["siteName"])
}

func TestFooterLayoutOverride(t *testing.T) {
	site := blocks.Encode(blocks.FooterContent{
		Copyright: "© Acme",
		Links:     []blocks.NavLink{{Label: "Privacy", URL: "/privacy"}},
		Layout:    "columns",
	})

	page := blocks.Encode(blocks.FooterContent{Layout: "minimal", OverrideLayout: false})
	merged, err := Footer(site, page)
	require.NoError(t, err)
	assert.Equal(t, "columns", merged["layout"])
	assert.Equal(t, "© Acme", merged["copyright"])

	page = blocks.Encode(blocks.FooterContent{Layout: "minimal", OverrideLayout: true})
	merged, err = Footer(site, page)
	require.NoError(t, err)
	assert.Equal(t, "minimal", merged["layout"])
	assert.Equal(t, "© Acme", merged["copyright"])
}

func TestFooterBothNilFallsBackToDefault(t *testing.T) {
	merged, err := Footer(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, blocks.DefaultContent(blocks.TypeFooter), merged)
}
