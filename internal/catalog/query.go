// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"devdirectory/internal/models"
)

// Query-parameter names. These are the durable public surface of the
// filtering system: a browse URL pasted into another browser must
// reproduce the same listing.
const (
	ParamSearch   = "q"
	ParamGroup    = "group"
	ParamCategory = "cat"
	ParamPricing  = "pricing"
	ParamStars    = "stars"
	ParamTag      = "tag"
	ParamPage     = "page"
	ParamSize     = "size"
)

// ParsePredicates maps a query string onto a predicate set, enforcing the
// group/category coupling:
//
//   - a category implies its parent group, overriding any group parameter,
//     so the sidebar always opens the right section;
//   - a group without a category clears the category to "all";
//   - the "all" group clears both.
//
// The tag parameter may repeat and may carry comma-joined values; all of
// them union into the selected-tag set. Unknown pricing values and
// negative star thresholds fall back to their no-constraint defaults.
func ParsePredicates(values url.Values, tax *Taxonomy) Predicates {
	p := NoopPredicates()
	p.Search = strings.TrimSpace(values.Get(ParamSearch))

	if g := values.Get(ParamGroup); g != "" && g != All {
		p.Group = g
	}
	if c := values.Get(ParamCategory); c != "" && c != All {
		p.Category = c
		if parent := tax.ParentGroup(c); parent != nil {
			p.Group = parent.Slug
		}
	}

	if tier := values.Get(ParamPricing); models.Pricing(tier).Valid() {
		p.Pricing = tier
	}

	if raw := values.Get(ParamStars); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.MinStars = n
		}
	}

	p.Tags = parseTags(values[ParamTag])
	return p
}

// parseTags flattens repeated and comma-joined tag parameters into a
// deduplicated list, preserving first-seen order.
func parseTags(raw []string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, chunk := range raw {
		for _, tag := range strings.Split(chunk, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParsePage reads the page and size parameters. The size is clamped to
// the allowed PageSizes set; the page is only lower-bounded here — the
// upper clamp needs the filtered item count and happens in Paginate.
func ParsePage(values url.Values) (page, size int) {
	page = 1
	if raw := values.Get(ParamPage); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			page = n
		}
	}
	size = DefaultPageSize
	if raw := values.Get(ParamSize); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			size = ClampPageSize(n)
		}
	}
	return page, size
}

// Values renders the predicate set back into canonical query parameters.
// No-constraint fields are omitted, so the unfiltered listing is the bare
// path; round-tripping through ParsePredicates is the identity.
func (p Predicates) Values() url.Values {
	values := url.Values{}
	if p.Search != "" {
		values.Set(ParamSearch, p.Search)
	}
	// A category subsumes its group in the canonical form; ParsePredicates
	// re-derives the parent.
	if p.Category != "" && p.Category != All {
		values.Set(ParamCategory, p.Category)
	} else if p.Group != "" && p.Group != All {
		values.Set(ParamGroup, p.Group)
	}
	if p.Pricing != "" && p.Pricing != All {
		values.Set(ParamPricing, p.Pricing)
	}
	if p.MinStars > 0 {
		values.Set(ParamStars, strconv.Itoa(p.MinStars))
	}
	for _, tag := range p.Tags {
		values.Add(ParamTag, tag)
	}
	return values
}
