package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"prompt-catalog/internal/domains/prompt/model"
)

//go:embed prompts.yaml
var defaultCatalog []byte

type catalogFile struct {
	Prompts []promptEntry `yaml:"prompts"`
}

type promptEntry struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Author      string         `yaml:"author"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Ratings     []ratingEntry  `yaml:"ratings"`
	Comments    []commentEntry `yaml:"comments"`
	Versions    []versionEntry `yaml:"versions"`
}

type ratingEntry struct {
	UserID string  `yaml:"user_id"`
	Score  float64 `yaml:"score"`
}

type commentEntry struct {
	ID      string `yaml:"id"`
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
	Age     string `yaml:"age"`
}

// Versions are numbered by their position in the file, starting at 1
type versionEntry struct {
	ID          string `yaml:"id"`
	Content     string `yaml:"content"`
	Description string `yaml:"description"`
	Age         string `yaml:"age"`
}

// Default returns the embedded sample catalog with timestamps relative to now.
func Default(now time.Time) ([]model.Prompt, error) {
	return Parse(defaultCatalog, now)
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string, now time.Time) ([]model.Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data, now)
}

// Parse decodes a YAML catalog. Derived fields (version numbers, current
// version, average rating) are computed, never read from the file.
func Parse(data []byte, now time.Time) ([]model.Prompt, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	prompts := make([]model.Prompt, 0, len(file.Prompts))
	for i, entry := range file.Prompts {
		prompt, err := entry.toPrompt(now)
		if err != nil {
			return nil, fmt.Errorf("seed prompt %d: %w", i, err)
		}
		prompts = append(prompts, prompt)
	}
	return prompts, nil
}

func (e promptEntry) toPrompt(now time.Time) (model.Prompt, error) {
	if len(e.Versions) == 0 {
		return model.Prompt{}, fmt.Errorf("prompt %q has no versions", e.Title)
	}

	prompt := model.Prompt{
		ID:          orNewID(e.ID),
		Title:       e.Title,
		Author:      e.Author,
		Description: e.Description,
		Tags:        model.NormalizeTags(e.Tags),
		Ratings:     make([]model.Rating, 0, len(e.Ratings)),
		Comments:    make([]model.Comment, 0, len(e.Comments)),
		Versions:    make([]model.Version, 0, len(e.Versions)),
	}

	for _, r := range e.Ratings {
		if r.Score < model.MinScore || r.Score > model.MaxScore {
			return model.Prompt{}, fmt.Errorf("rating score %v out of range", r.Score)
		}
		userID := r.UserID
		if userID == "" {
			userID = model.RatingUserPrefix + uuid.NewString()
		}
		prompt.Ratings = append(prompt.Ratings, model.Rating{UserID: userID, Score: r.Score})
	}
	prompt.AverageRating = model.AverageRating(prompt.Ratings)

	for _, c := range e.Comments {
		ts, err := timestamp(now, c.Age)
		if err != nil {
			return model.Prompt{}, err
		}
		prompt.Comments = append(prompt.Comments, model.Comment{
			ID:        orNewID(c.ID),
			Author:    c.Author,
			Content:   c.Content,
			Timestamp: ts,
		})
	}

	for i, v := range e.Versions {
		ts, err := timestamp(now, v.Age)
		if err != nil {
			return model.Prompt{}, err
		}
		prompt.Versions = append(prompt.Versions, model.Version{
			ID:            orNewID(v.ID),
			Content:       v.Content,
			Description:   v.Description,
			VersionNumber: i + model.FirstVersionNumber,
			Timestamp:     ts,
		})
	}
	prompt.CurrentVersion = len(prompt.Versions)

	return prompt, nil
}

func timestamp(now time.Time, age string) (time.Time, error) {
	if age == "" {
		return now, nil
	}
	d, err := time.ParseDuration(age)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid age %q: %w", age, err)
	}
	return now.Add(-d), nil
}

func orNewID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
