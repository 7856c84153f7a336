// Package content defines the application's core content-related domain entities.
package content

import "time"

// SectionStatus is the publishing state of a section.
type SectionStatus string

const (
	StatusDraft     SectionStatus = "draft"
	StatusPublished SectionStatus = "published"
)

type SiteNode struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Name          string         `json:"name"`
	NodeType      string         `json:"nodeType"`
	Slug          string         `json:"slug"`
	HeaderContent map[string]any `json:"headerContent,omitempty"`
	FooterContent map[string]any `json:"footerContent,omitempty"`
	Created       time.Time      `json:"created"`
	Changed       *time.Time     `json:"changed,omitempty"`
}

type PageNode struct {
	ID         string     `json:"id"`
	SiteID     string     `json:"siteId"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title"`
	NodeType   string     `json:"nodeType"`
	Slug       string     `json:"slug"`
	SectionIDs []string   `json:"sectionIds"`
	Created    time.Time  `json:"created"`
	Changed    *time.Time `json:"changed,omitempty"`
}

// SectionNode is one ordered content block on a page. Content is polymorphic
// by BlockType and is stored opaquely; only the migration engine reads one
// block type's payload and re-emits it as another's.
type SectionNode struct {
	ID        string         `json:"id"`
	PageID    string         `json:"pageId"`
	UserID    string         `json:"userId"`
	NodeType  string         `json:"nodeType"`
	BlockType string         `json:"blockType"`
	Content   map[string]any `json:"content"`
	Position  int            `json:"position"`
	Status    SectionStatus  `json:"status"`
	AnchorID  *string        `json:"anchorId,omitempty"`
	Created   time.Time      `json:"created"`
	Changed   *time.Time     `json:"changed,omitempty"`
}

type UserNode struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	NodeType string    `json:"nodeType"`
	Created  time.Time `json:"created"`
}
