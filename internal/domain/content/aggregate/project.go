package aggregate

import (
	"strings"
	"time"

	"portfolio-server-go/internal/platform/errors"
)

// ProjectLinks groups the optional URLs attached to a project. Stored
// as a single JSON column.
type ProjectLinks struct {
	Live   string `json:"live,omitempty"`
	Source string `json:"source,omitempty"`
	Image  string `json:"image,omitempty"`
}

// Project is a portfolio entry. Description is markdown. Featured
// projects surface on the home page, ordered by DisplayOrder ascending.
type Project struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	TechStack    string       `json:"techStack"`
	Links        ProjectLinks `json:"links"`
	Featured     bool         `json:"featured"`
	DisplayOrder int          `json:"displayOrder"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func NewProject(title, description, techStack string, links ProjectLinks, featured bool, displayOrder int) (*Project, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	techStack = strings.TrimSpace(techStack)

	if err := validateProjectFields(title, description, techStack); err != nil {
		return nil, err
	}

	return &Project{
		Title:        title,
		Description:  description,
		TechStack:    techStack,
		Links:        links,
		Featured:     featured,
		DisplayOrder: displayOrder,
		CreatedAt:    time.Now(),
	}, nil
}

func (p *Project) Apply(title, description, techStack string, links ProjectLinks, featured bool, displayOrder int) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	techStack = strings.TrimSpace(techStack)

	if err := validateProjectFields(title, description, techStack); err != nil {
		return err
	}

	p.Title = title
	p.Description = description
	p.TechStack = techStack
	p.Links = links
	p.Featured = featured
	p.DisplayOrder = displayOrder
	return nil
}

// TechList splits the comma-separated stack into display entries.
func (p *Project) TechList() []string {
	if p.TechStack == "" {
		return nil
	}
	parts := strings.Split(p.TechStack, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func validateProjectFields(title, description, techStack string) error {
	if title == "" || description == "" || techStack == "" {
		return errors.New(errors.KindDomain, "project.validate", "title, description, and tech stack are required")
	}
	if len(title) > MaxTitleLength {
		return errors.New(errors.KindDomain, "project.validate", "title exceeds 200 characters")
	}
	return nil
}
