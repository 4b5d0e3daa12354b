package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/template"
)

// LoadTemplates lists and parses templates. Malformed templates are logged
// and skipped; only a listing failure is returned.
func (s *Session) LoadTemplates(ctx context.Context, lister template.Lister, dir string) error {
	if err := s.guard(); err != nil {
		return err
	}
	templates, err := template.Load(ctx, lister, dir)
	if err != nil && !errors.Is(err, template.ErrMalformedTemplate) {
		return err
	}
	if err != nil {
		s.logJoined("template skipped", err)
	}
	s.templates = templates
	s.selected = -1
	s.refresh()
	s.logger.Info("templates loaded", zap.Int("count", len(templates)), zap.String("dir", dir))
	return nil
}

// Templates lists the loaded templates.
func (s *Session) Templates() []template.Template {
	return append([]template.Template(nil), s.templates...)
}

// SelectTemplate makes the named template part of the submission.
func (s *Session) SelectTemplate(name string) error {
	if err := s.guard(); err != nil {
		return err
	}
	for idx, tpl := range s.templates {
		if tpl.Name == name {
			s.selected = idx
			s.refresh()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// ClearTemplate drops the template selection.
func (s *Session) ClearTemplate() error {
	if err := s.guard(); err != nil {
		return err
	}
	s.selected = -1
	s.refresh()
	return nil
}

// Template returns the selected template.
func (s *Session) Template() (template.Template, bool) {
	if s.selected < 0 || s.selected >= len(s.templates) {
		return template.Template{}, false
	}
	return s.templates[s.selected], true
}

// SetTemplateValue edits a field of the selected template.
func (s *Session) SetTemplateValue(name string, value any) error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.selected < 0 || s.selected >= len(s.templates) {
		return fmt.Errorf("%w: none selected", ErrUnknownTemplate)
	}
	return s.templates[s.selected].Set(name, value)
}
