// Package prompt is the terminal front-end of a session: a menu loop that
// adds, edits, moves and removes descriptors, imports documents, picks a
// template and submits the composed front matter.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/outline"
	"github.com/goliatone/go-fmcompose/pkg/session"
	"github.com/goliatone/go-fmcompose/pkg/source"
	"github.com/goliatone/go-fmcompose/pkg/template"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// Menu entries.
const (
	ActionAdd           = "Add field"
	ActionEdit          = "Edit value"
	ActionRename        = "Rename"
	ActionMove          = "Move"
	ActionDelete        = "Delete"
	ActionImport        = "Import document"
	ActionTemplate      = "Choose template"
	ActionTemplateField = "Edit template field"
	ActionOutline       = "Show outline"
	ActionPreview       = "Preview"
	ActionClear         = "Clear"
	ActionSubmit        = "Submit"
	ActionQuit          = "Quit"
)

// Labels of the synthetic choices.
const (
	RootChoice     = "(root)"
	EndChoice      = "At the end"
	NoTemplate     = "(none)"
	listSeparator  = ","
	beforePrefix   = "Before "
	rowHeight      = 1.0
	selectPageSize = 15
)

// Composer drives a session from the terminal.
type Composer struct {
	session *session.Session
	driver  PromptDriver
	loader  source.Loader
	theme   Theme
	logger  *zap.Logger
}

// New constructs a Composer over s with the survey driver by default.
func New(s *session.Session, options ...Option) *Composer {
	c := &Composer{
		session: s,
		theme:   DefaultTheme,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

type action struct {
	label string
	run   func(context.Context) error
}

func (c *Composer) actions() []action {
	hasNodes := c.session.Tree().Len() > 0
	_, hasTemplate := c.session.Template()

	var out []action
	out = append(out, action{ActionAdd, c.add})
	if hasNodes {
		out = append(out,
			action{ActionEdit, c.edit},
			action{ActionRename, c.rename},
			action{ActionMove, c.move},
			action{ActionDelete, c.remove},
		)
	}
	if c.loader != nil {
		out = append(out, action{ActionImport, c.importDocument})
	}
	if len(c.session.Templates()) > 0 {
		out = append(out, action{ActionTemplate, c.chooseTemplate})
	}
	if hasTemplate {
		out = append(out, action{ActionTemplateField, c.editTemplateField})
	}
	out = append(out,
		action{ActionOutline, c.showOutline},
		action{ActionPreview, c.preview},
	)
	if c.session.CanClear() {
		out = append(out, action{ActionClear, c.clear})
	}
	if c.session.Ready() {
		out = append(out, action{ActionSubmit, c.submit})
	}
	return out
}

// Run loops over the menu until the user quits. Action failures are printed
// and the loop continues; an aborted prompt ends the loop with ErrAborted.
func (c *Composer) Run(ctx context.Context) error {
	if c.session == nil {
		return errors.New("prompt: session is nil")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		actions := c.actions()
		labels := make([]string, 0, len(actions)+1)
		for _, a := range actions {
			labels = append(labels, a.label)
		}
		labels = append(labels, ActionQuit)

		idx, err := c.driver.Select(ctx, SelectConfig{Message: "What next?", Options: labels, PageSize: selectPageSize})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			return nil
		}

		chosen := actions[idx]
		if err := chosen.run(ctx); err != nil {
			if errors.Is(err, ErrAborted) {
				return err
			}
			c.logger.Debug("action failed", zap.String("action", chosen.label), zap.Error(err))
			if err := c.driver.Info(ctx, c.theme.ErrorPrefix+err.Error()); err != nil {
				return err
			}
		}
	}
}

func (c *Composer) info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, c.theme.InfoPrefix+msg)
}

func (c *Composer) add(ctx context.Context) error {
	palette := descriptor.Palette()
	options := make([]string, 0, len(palette))
	for _, component := range palette {
		options = append(options, string(component))
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Component", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(palette) {
		return nil
	}

	scopeID, err := c.pickScope(ctx, "Add to", "")
	if err != nil {
		return err
	}
	p, err := c.pickPlacement(ctx, scopeID, "")
	if err != nil {
		return err
	}
	node, err := c.session.Add(scopeID, palette[idx], p)
	if err != nil {
		return err
	}
	if !node.Hidden {
		if err := c.askLabel(ctx, node); err != nil {
			return err
		}
	}
	if node.IsContainer() {
		return nil
	}
	return c.askValue(ctx, node)
}

func (c *Composer) edit(ctx context.Context) error {
	node, err := c.pickNode(ctx, "Edit", func(d *descriptor.Descriptor) bool { return !d.IsContainer() })
	if err != nil || node == nil {
		return err
	}
	return c.askValue(ctx, node)
}

func (c *Composer) rename(ctx context.Context) error {
	node, err := c.pickNode(ctx, "Rename", nil)
	if err != nil || node == nil {
		return err
	}
	return c.askLabel(ctx, node)
}

func (c *Composer) move(ctx context.Context) error {
	node, err := c.pickNode(ctx, "Move", nil)
	if err != nil || node == nil {
		return err
	}
	_, parent, _ := c.session.Tree().Find(node.ID)
	fromID := tree.RootID
	if parent != nil {
		fromID = parent.ID
	}
	toID, err := c.pickScope(ctx, "Move into", node.ID)
	if err != nil {
		return err
	}
	p, err := c.pickPlacement(ctx, toID, node.ID)
	if err != nil {
		return err
	}
	return c.session.Move(node.ID, fromID, toID, p)
}

func (c *Composer) remove(ctx context.Context) error {
	node, err := c.pickNode(ctx, "Delete", nil)
	if err != nil || node == nil {
		return err
	}
	ok, err := c.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete %s?", nodeLabel(node))})
	if err != nil || !ok {
		return err
	}
	_, parent, _ := c.session.Tree().Find(node.ID)
	scopeID := tree.RootID
	if parent != nil {
		scopeID = parent.ID
	}
	removed, err := c.session.Delete(node.ID, scopeID)
	if err != nil {
		return err
	}
	return c.info(ctx, fmt.Sprintf("Removed %d field(s)", removed))
}

func (c *Composer) importDocument(ctx context.Context) error {
	if c.loader == nil {
		return ErrNoLoader
	}
	location, err := c.driver.Input(ctx, InputConfig{
		Message: "File or URL",
		Help:    "Markdown front matter, JSON, YAML or a fields schema",
	})
	if err != nil {
		return err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil
	}
	scopeID, err := c.pickScope(ctx, "Import into", "")
	if err != nil {
		return err
	}
	p, err := c.pickPlacement(ctx, scopeID, "")
	if err != nil {
		return err
	}
	count, err := c.session.Import(ctx, c.loader, source.Parse(location), scopeID, p)
	if err != nil {
		return err
	}
	return c.info(ctx, fmt.Sprintf("Imported %d field(s)", count))
}

func (c *Composer) chooseTemplate(ctx context.Context) error {
	templates := c.session.Templates()
	options := []string{NoTemplate}
	defaultIdx := 0
	current, hasCurrent := c.session.Template()
	for idx, tpl := range templates {
		options = append(options, tpl.Name)
		if hasCurrent && tpl.Name == current.Name {
			defaultIdx = idx + 1
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Template", Options: options, DefaultIndex: defaultIdx})
	if err != nil {
		return err
	}
	if idx <= 0 || idx >= len(options) {
		return c.session.ClearTemplate()
	}
	return c.session.SelectTemplate(options[idx])
}

func (c *Composer) editTemplateField(ctx context.Context) error {
	tpl, ok := c.session.Template()
	if !ok || tpl.Len() == 0 {
		return nil
	}
	names := make([]string, 0, tpl.Len())
	for _, field := range tpl.Values {
		names = append(names, tpl.FieldName(field))
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Field", Options: names})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(names) {
		return nil
	}
	field := tpl.Values[idx]
	message := names[idx]

	var value any
	switch field.Widget {
	case template.WidgetSelect:
		options := field.Options()
		current := indexOf(options, fmt.Sprint(field.Resolved()))
		choice, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: current})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(options) {
			return nil
		}
		value = options[choice]
	case template.WidgetCheckbox:
		checked, _ := field.Resolved().(bool)
		answer, err := c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: checked})
		if err != nil {
			return err
		}
		value = answer
	case template.WidgetTextarea, template.WidgetMarkdown:
		answer, err := c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: fmt.Sprint(field.Resolved())})
		if err != nil {
			return err
		}
		value = answer
	default:
		answer, err := c.driver.Input(ctx, InputConfig{Message: message, Default: fmt.Sprint(field.Resolved()), Help: field.Placeholder})
		if err != nil {
			return err
		}
		value = answer
	}
	return c.session.SetTemplateValue(names[idx], value)
}

func (c *Composer) showOutline(ctx context.Context) error {
	return c.info(ctx, outline.Render(c.session.Tree()))
}

func (c *Composer) preview(ctx context.Context) error {
	doc, err := c.session.Compose()
	if err != nil {
		return err
	}
	rendered, err := frontmatter.Render(doc)
	if err != nil {
		return err
	}
	return c.info(ctx, strings.TrimRight(string(rendered), "\n"))
}

func (c *Composer) clear(ctx context.Context) error {
	ok, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Remove every field?"})
	if err != nil || !ok {
		return err
	}
	return c.session.Clear()
}

func (c *Composer) submit(ctx context.Context) error {
	location, err := c.session.Submit(ctx)
	if err != nil {
		return err
	}
	return c.info(ctx, "Saved to "+location)
}
