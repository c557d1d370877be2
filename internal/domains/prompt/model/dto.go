package model

import (
	"encoding/json"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var notBlank = regexp.MustCompile(`\S`)

// =====================================================
// REQUEST DTOs
// =====================================================

// TagList accepts either a JSON array of tags or a single comma separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = ParseTags(raw)
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*t = tags
	return nil
}

// CreatePromptRequest request to create a prompt together with its first version
type CreatePromptRequest struct {
	Title              string  `json:"title"`
	Author             string  `json:"author"`
	Description        string  `json:"description"`
	Tags               TagList `json:"tags"`
	Content            string  `json:"content"`
	VersionDescription string  `json:"version_description"`
}

func (r CreatePromptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Match(notBlank).Error("title must not be blank"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Match(notBlank).Error("author must not be blank"),
			validation.RuneLength(1, MaxAuthorLength),
		),
		validation.Field(&r.Tags, validation.Length(0, MaxTags), validation.Each(validation.RuneLength(0, MaxTagLength))),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Match(notBlank).Error("content must not be blank"),
		),
	)
}

// UpdatePromptDetailsRequest request to edit a prompt's metadata
type UpdatePromptDetailsRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Tags        TagList `json:"tags"`
}

func (r UpdatePromptDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Match(notBlank).Error("title must not be blank"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Match(notBlank).Error("author must not be blank"),
			validation.RuneLength(1, MaxAuthorLength),
		),
		validation.Field(&r.Tags, validation.Length(0, MaxTags), validation.Each(validation.RuneLength(0, MaxTagLength))),
	)
}

// AddVersionRequest request to append a version
type AddVersionRequest struct {
	Content            string `json:"content"`
	VersionDescription string `json:"version_description"`
}

func (r AddVersionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Match(notBlank).Error("content must not be blank"),
		),
	)
}

// AddCommentRequest request to comment on a prompt
type AddCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Match(notBlank).Error("author must not be blank"),
			validation.RuneLength(1, MaxAuthorLength),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Match(notBlank).Error("content must not be blank"),
		),
	)
}

// AddRatingRequest request to rate a prompt
type AddRatingRequest struct {
	Score float64 `json:"score"`
}

func (r AddRatingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Score,
			validation.Required.Error("score is required"),
			validation.Min(MinScore).Error("score must be between 1 and 5"),
			validation.Max(MaxScore).Error("score must be between 1 and 5"),
		),
	)
}

// =====================================================
// EDIT FORM
// =====================================================

// EditMode selects which fields an edit form collects.
type EditMode string

const (
	EditModeCreate      EditMode = "create"
	EditModeEditDetails EditMode = "edit_details"
	EditModeAddVersion  EditMode = "add_version"
)

func (m EditMode) Valid() bool {
	switch m {
	case EditModeCreate, EditModeEditDetails, EditModeAddVersion:
		return true
	}
	return false
}

// EditForm holds the pre-filled values of an edit form.
type EditForm struct {
	Mode               EditMode `json:"mode"`
	Title              string   `json:"title"`
	Author             string   `json:"author"`
	Description        string   `json:"description"`
	Tags               string   `json:"tags"`
	Content            string   `json:"content"`
	VersionDescription string   `json:"version_description"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// CatalogStatistics aggregate counters over the whole catalog
type CatalogStatistics struct {
	Revision      uint64 `json:"revision"`
	TotalPrompts  int    `json:"total_prompts"`
	TotalVersions int    `json:"total_versions"`
	TotalRatings  int    `json:"total_ratings"`
	TotalComments int    `json:"total_comments"`
}
