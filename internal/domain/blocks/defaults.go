package blocks

// Default-content generators. Style fields default to their neutral values:
// layout "standard", background "auto", overlay/border "none".

func defaultHeader() map[string]any {
	return Encode(HeaderContent{
		Layout:       "standard",
		ShowLogoText: true,
		ButtonLabel:  "Get started",
		Links:        []NavLink{},
	})
}

func defaultFooter() map[string]any {
	return Encode(FooterContent{
		Layout: "standard",
		Links:  []NavLink{},
	})
}

func defaultHero() map[string]any {
	return Encode(HeroContent{
		Heading:     "Welcome",
		Subheading:  "Tell visitors what this site is about.",
		ButtonLabel: "Learn more",
		Background:  "auto",
	})
}

func defaultText() map[string]any {
	return Encode(TextContent{
		Body:  "Write something here.",
		Align: "left",
	})
}

func defaultCTA() map[string]any {
	return Encode(CTAContent{
		Heading:     "Ready to get started?",
		ButtonLabel: "Contact us",
		Background:  "auto",
	})
}

func defaultImage() map[string]any {
	return Encode(ImageContent{})
}

func defaultEmbed() map[string]any {
	return Encode(EmbedContent{AspectRatio: "16:9"})
}

func defaultGallery() map[string]any {
	return Encode(GalleryContent{Images: []GalleryImage{}})
}

func defaultFeatures() map[string]any {
	return Encode(FeaturesContent{
		Heading: "Features",
		Items:   []FeatureItem{},
	})
}

func defaultTestimonials() map[string]any {
	return Encode(TestimonialsContent{
		Heading: "What people say",
		Items:   []TestimonialItem{},
	})
}

func defaultContact() map[string]any {
	return Encode(ContactContent{
		Heading:  "Get in touch",
		ShowForm: true,
	})
}

func defaultBlogFeatured() map[string]any {
	return Encode(BlogFeaturedContent{Heading: "Latest post", PostCount: 1})
}

func defaultBlogGrid() map[string]any {
	return Encode(BlogGridContent{Heading: "From the blog", PostCount: 6, ShowExcerpts: true})
}

func defaultHeroPrimitive() map[string]any {
	return Encode(HeroPrimitiveContent{
		Layout:     "hero",
		Heading:    "Welcome",
		Overlay:    "none",
		Background: "auto",
		Align:      "left",
	})
}

func defaultCards() map[string]any {
	return Encode(CardsContent{
		Template: "features",
		Items:    []CardItem{},
		Columns:  "auto",
		Border:   "none",
	})
}

func defaultMedia() map[string]any {
	return Encode(MediaContent{
		Kind:        "image",
		AspectRatio: "auto",
		Border:      "none",
	})
}

func defaultBlog() map[string]any {
	return Encode(BlogContent{Template: "grid", PostCount: 6, ShowExcerpts: true})
}
