package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AverageRating returns the mean score rounded to one decimal place
// (half away from zero), or 0 when there are no ratings.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	total := decimal.Zero
	for _, r := range ratings {
		total = total.Add(decimal.NewFromFloat(r.Score))
	}

	avg := total.Div(decimal.NewFromInt(int64(len(ratings)))).Round(RatingPrecision)
	return avg.InexactFloat64()
}

// NormalizeTags trims tags, drops empty ones and removes duplicates,
// keeping the first occurrence's position.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// ParseTags splits a comma separated tag list the way the edit form does.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// EditDefaults returns the values an edit form starts with for the given mode.
// A nil prompt yields the defaults for creating a new prompt.
func EditDefaults(p *Prompt, mode EditMode) EditForm {
	if p == nil {
		return EditForm{
			Mode:               mode,
			Tags:               "",
			VersionDescription: DefaultVersionDescription,
		}
	}

	form := EditForm{
		Mode:        mode,
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		Tags:        strings.Join(p.Tags, ", "),
	}

	latest, ok := p.LatestVersion()
	if ok {
		form.Content = latest.Content
		form.VersionDescription = latest.Description
	}
	if mode == EditModeAddVersion {
		form.VersionDescription = ""
	} else if form.VersionDescription == "" {
		form.VersionDescription = DefaultVersionDescription
	}

	return form
}
