package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DefaultAuthorName is shown for posts whose SEO metadata names no author.
const DefaultAuthorName = "Balkan Game Hub Team"

// RemotePost is the wire shape of a WordPress post (wp/v2/posts).
type RemotePost struct {
	ID         int        `json:"id"`
	Date       string     `json:"date"`
	DateGMT    string     `json:"date_gmt"`
	Title      Rendered   `json:"title"`
	Excerpt    *Rendered  `json:"excerpt,omitempty"`
	Content    *Rendered  `json:"content,omitempty"`
	Categories []int      `json:"categories,omitempty"`
	Yoast      *YoastHead `json:"yoast_head_json,omitempty"`
	Embedded   *Embedded  `json:"_embedded,omitempty"`
}

// Rendered holds server-rendered HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Embedded holds the resources inlined by the _embed query parameter.
type Embedded struct {
	Media []Media  `json:"wp:featuredmedia,omitempty"`
	Terms [][]Term `json:"wp:term,omitempty"`
}

// Media is an embedded featured media entry.
type Media struct {
	SourceURL string        `json:"source_url"`
	Details   *MediaDetails `json:"media_details,omitempty"`
}

// MediaDetails describes the generated image sizes of a media entry.
type MediaDetails struct {
	Sizes *MediaSizes `json:"sizes,omitempty"`
}

// MediaSizes lists the image sizes this client knows how to use.
type MediaSizes struct {
	MediumLarge *MediaSize `json:"medium_large,omitempty"`
	Medium      *MediaSize `json:"medium,omitempty"`
	Large       *MediaSize `json:"large,omitempty"`
	Thumbnail   *MediaSize `json:"thumbnail,omitempty"`
}

// MediaSize is a single rendition of an image.
type MediaSize struct {
	SourceURL string `json:"source_url"`
}

// Term is an embedded taxonomy term, usually a category.
type Term struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

// YoastHead is the subset of Yoast SEO metadata carrying the author.
type YoastHead struct {
	TwitterMisc *TwitterMisc `json:"twitter_misc,omitempty"`
}

// TwitterMisc holds the Yoast twitter label/value pairs.
type TwitterMisc struct {
	WrittenBy string `json:"Written by,omitempty"`
}

// WordPress sends media_details (and sometimes sizes) as an empty array for
// media without renditions.
func (d *MediaDetails) UnmarshalJSON(b []byte) error {
	type plain MediaDetails
	var p plain
	if ok, err := decodeObject(b, &p); !ok || err != nil {
		*d = MediaDetails{}
		return err
	}
	*d = MediaDetails(p)
	return nil
}

func (s *MediaSizes) UnmarshalJSON(b []byte) error {
	type plain MediaSizes
	var p plain
	if ok, err := decodeObject(b, &p); !ok || err != nil {
		*s = MediaSizes{}
		return err
	}
	*s = MediaSizes(p)
	return nil
}

// decodeObject decodes b into v only when b is a JSON object.
func decodeObject(b []byte, v any) (bool, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false, nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return false, err
	}
	return true, nil
}

// PublishedDate returns the GMT date when present, else the site-local date.
func (p *RemotePost) PublishedDate() string {
	if p.DateGMT != "" {
		return p.DateGMT
	}
	return p.Date
}

// BestImageURL applies the image selection policy to the first featured
// media entry: medium_large, medium, large, then the media source URL.
func (p *RemotePost) BestImageURL() string {
	if p.Embedded == nil || len(p.Embedded.Media) == 0 {
		return ""
	}
	return p.Embedded.Media[0].BestImageURL()
}

// BestImageURL returns the first available rendition URL.
func (m *Media) BestImageURL() string {
	if m.Details != nil && m.Details.Sizes != nil {
		sizes := m.Details.Sizes
		for _, size := range []*MediaSize{sizes.MediumLarge, sizes.Medium, sizes.Large} {
			if size != nil && size.SourceURL != "" {
				return size.SourceURL
			}
		}
	}
	return m.SourceURL
}

// AuthorName returns the Yoast "Written by" value or DefaultAuthorName.
func (p *RemotePost) AuthorName() string {
	if p.Yoast != nil && p.Yoast.TwitterMisc != nil {
		if name := strings.TrimSpace(p.Yoast.TwitterMisc.WrittenBy); name != "" {
			return name
		}
	}
	return DefaultAuthorName
}

// PrimaryTerm returns the first embedded term, if any.
func (p *RemotePost) PrimaryTerm() (Term, bool) {
	if p.Embedded == nil {
		return Term{}, false
	}
	for _, terms := range p.Embedded.Terms {
		if len(terms) > 0 {
			return terms[0], true
		}
	}
	return Term{}, false
}
