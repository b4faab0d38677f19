// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// baseline.go holds the bundled fallback dataset. When the database is
// unreachable at startup the directory still serves its taxonomy (with
// advisory counts) and an empty tool list instead of failing the view.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"devdirectory/internal/models"
)

//go:embed baseline.json
var baselineFS embed.FS

// baselineFile mirrors the shape of baseline.json.
type baselineFile struct {
	Groups []struct {
		Name       string `json:"name"`
		Slug       string `json:"slug"`
		Categories []struct {
			Name        string `json:"name"`
			Slug        string `json:"slug"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
			ToolCount   int    `json:"toolCount"`
		} `json:"categories"`
	} `json:"groups"`
	Tools []models.Tool `json:"tools"`
}

// Baseline parses the embedded fallback dataset. Entity IDs are generated
// fresh on every call — navigation and the category join key on slugs, so
// baseline IDs only need to be unique, not stable.
func Baseline() ([]models.Group, []models.Tool, error) {
	raw, err := baselineFS.ReadFile("baseline.json")
	if err != nil {
		return nil, nil, fmt.Errorf("baseline read: %w", err)
	}

	var file baselineFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("baseline parse: %w", err)
	}

	groups := make([]models.Group, 0, len(file.Groups))
	for gi, g := range file.Groups {
		group := models.Group{
			ID:        uuid.New(),
			Name:      g.Name,
			Slug:      g.Slug,
			SortOrder: gi,
		}
		for ci, c := range g.Categories {
			group.Categories = append(group.Categories, models.Category{
				ID:          uuid.New(),
				GroupID:     group.ID,
				Name:        c.Name,
				Slug:        c.Slug,
				Description: c.Description,
				Icon:        c.Icon,
				ToolCount:   c.ToolCount,
				SortOrder:   ci,
			})
		}
		groups = append(groups, group)
	}

	return groups, file.Tools, nil
}
