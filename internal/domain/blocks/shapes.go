package blocks

// Typed content shapes. Sections store content opaquely as map[string]any;
// these structs are the application-boundary view used by default-content
// generation, the migration engine, and the header/footer resolver.

// NavLink is one navigation entry in header or footer content.
type NavLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// HeaderContent is the page-level header block payload. Shared fields (site
// name, navigation) are authoritative at the site level; style fields only
// apply when their override flag is set.
type HeaderContent struct {
	SiteName string    `json:"siteName"`
	LogoURL  string    `json:"logoUrl"`
	Links    []NavLink `json:"links"`

	Layout       string `json:"layout"`
	Sticky       bool   `json:"sticky"`
	ShowLogoText bool   `json:"showLogoText"`
	ShowButton   bool   `json:"showButton"`
	ButtonLabel  string `json:"buttonLabel"`
	ButtonURL    string `json:"buttonUrl"`

	OverrideLayout       bool `json:"overrideLayout"`
	OverrideSticky       bool `json:"overrideSticky"`
	OverrideShowLogoText bool `json:"overrideShowLogoText"`
	OverrideShowButton   bool `json:"overrideShowButton"`
}

// FooterContent is the page-level footer block payload.
type FooterContent struct {
	Copyright string    `json:"copyright"`
	Links     []NavLink `json:"links"`

	Layout         string `json:"layout"`
	OverrideLayout bool   `json:"overrideLayout"`
}

type HeroContent struct {
	Heading     string `json:"heading"`
	Subheading  string `json:"subheading"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonURL   string `json:"buttonUrl"`
	ImageSrc    string `json:"imageSrc"`
	ImageAlt    string `json:"imageAlt"`
	Overlay     bool   `json:"overlay"`
	Background  string `json:"background"`
}

type TextContent struct {
	Body  string `json:"body"`
	Align string `json:"align"`
}

type CTAContent struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonURL   string `json:"buttonUrl"`
	Background  string `json:"background"`
}

type ImageContent struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Border  bool   `json:"border"`
}

type EmbedContent struct {
	URL         string `json:"url"`
	HTML        string `json:"html"`
	AspectRatio string `json:"aspectRatio"`
}

type GalleryImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type GalleryContent struct {
	Heading string         `json:"heading"`
	Images  []GalleryImage `json:"images"`
}

type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type FeaturesContent struct {
	Heading string        `json:"heading"`
	Items   []FeatureItem `json:"items"`
}

type TestimonialItem struct {
	Quote     string `json:"quote"`
	Author    string `json:"author"`
	Role      string `json:"role"`
	AvatarSrc string `json:"avatarSrc"`
}

type TestimonialsContent struct {
	Heading string            `json:"heading"`
	Items   []TestimonialItem `json:"items"`
}

type ContactContent struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Email       string `json:"email"`
	ShowForm    bool   `json:"showForm"`
}

type BlogFeaturedContent struct {
	Heading   string `json:"heading"`
	PostCount int    `json:"postCount"`
}

type BlogGridContent struct {
	Heading      string `json:"heading"`
	PostCount    int    `json:"postCount"`
	ShowExcerpts bool   `json:"showExcerpts"`
}

// HeroPrimitiveContent is the flexible successor of hero, cta, and text,
// distinguished by Layout.
type HeroPrimitiveContent struct {
	Layout      string `json:"layout"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonURL   string `json:"buttonUrl"`
	ImageSrc    string `json:"imageSrc"`
	ImageAlt    string `json:"imageAlt"`
	Overlay     string `json:"overlay"`
	Background  string `json:"background"`
	Align       string `json:"align"`
}

// CardItem is one entry of a cards block. ID is a stable per-item identifier;
// legacy list items had none and receive a fresh one on conversion.
type CardItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	Icon     string `json:"icon"`
	ImageSrc string `json:"imageSrc"`
	ImageAlt string `json:"imageAlt"`
	LinkURL  string `json:"linkUrl"`
}

// CardsContent is the successor of features, testimonials, and gallery,
// distinguished by Template.
type CardsContent struct {
	Template string     `json:"template"`
	Heading  string     `json:"heading"`
	Items    []CardItem `json:"items"`
	Columns  string     `json:"columns"`
	Border   string     `json:"border"`
}

// MediaContent is the successor of image and embed, distinguished by Kind.
type MediaContent struct {
	Kind        string `json:"kind"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Caption     string `json:"caption"`
	URL         string `json:"url"`
	HTML        string `json:"html"`
	AspectRatio string `json:"aspectRatio"`
	Border      string `json:"border"`
}

// BlogContent is the successor of blog_featured and blog_grid, distinguished
// by Template.
type BlogContent struct {
	Template     string `json:"template"`
	Heading      string `json:"heading"`
	PostCount    int    `json:"postCount"`
	ShowExcerpts bool   `json:"showExcerpts"`
}
