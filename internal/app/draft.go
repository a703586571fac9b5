package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/model"
)

// draft is an in-progress edit. touched records fields set by the user.
type draft struct {
	entry   model.Entry
	touched map[string]bool
}

func newDraft(e model.Entry) *draft {
	return &draft{entry: e.Clone(), touched: map[string]bool{}}
}

// OpenAdmin shows the admin list, filtered by a word substring.
func (c *Controller) OpenAdmin(ctx context.Context, filter string) ([]model.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeDraft()
	c.adminFilter = filter
	if err := c.refreshAdmin(ctx); err != nil {
		return nil, err
	}
	c.view = ViewAdminList
	return cloneEntries(c.adminList), nil
}

func (c *Controller) refreshAdmin(ctx context.Context) error {
	all, err := c.entries.List(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	c.adminList = dictionary.FilterByWord(all, c.adminFilter)
	return nil
}

func (c *Controller) closeDraft() {
	c.draft = nil
	c.seq++
}

func (c *Controller) openDraft(e model.Entry) {
	c.draft = newDraft(e)
	c.seq++
	c.view = ViewAdminEdit
}

// NewDraft starts editing a new entry with the given headword.
func (c *Controller) NewDraft(word string) model.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openDraft(model.Entry{Word: word})
	return c.draft.entry.Clone()
}

// EditDraft starts editing a copy of entry id.
func (c *Controller) EditDraft(ctx context.Context, id string) (model.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entries.Get(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}
	c.openDraft(e)
	return c.draft.entry.Clone(), nil
}

// Draft returns the entry being edited.
func (c *Controller) Draft() (model.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return model.Entry{}, false
	}
	return c.draft.entry.Clone(), true
}

// SetField sets a string field of the draft by its JSON name.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoDraft
	}
	p := c.draft.entry.StringField(name)
	if p == nil {
		return model.NewValidationError(name, "unknown field")
	}
	*p = value
	c.draft.touched[name] = true
	return nil
}

// SetList sets a sequence field of the draft by its JSON name.
func (c *Controller) SetList(name string, values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoDraft
	}
	p := c.draft.entry.ListField(name)
	if p == nil {
		return model.NewValidationError(name, "unknown field")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*p = out
	c.draft.touched[name] = true
	return nil
}

// SaveDraft persists the draft and returns to the admin list. On failure
// the draft stays open and unchanged.
func (c *Controller) SaveDraft(ctx context.Context) (model.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return model.Entry{}, ErrNoDraft
	}
	saved, err := c.entries.Save(ctx, c.draft.entry)
	if err != nil {
		return model.Entry{}, err
	}
	c.closeDraft()
	if c.current != nil && c.current.ID == saved.ID {
		cur := saved.Clone()
		c.current = &cur
	}
	if err := c.refreshAdmin(ctx); err != nil {
		c.log.Warn().Err(err).Msg("refresh admin list")
	}
	c.view = ViewAdminList
	c.log.Info().Str("id", saved.ID).Str("word", saved.Word).Msg("entry saved")
	return saved, nil
}

// CancelDraft discards the draft without persisting it.
func (c *Controller) CancelDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return
	}
	c.closeDraft()
	c.view = ViewAdminList
}

// DeleteEntry removes entry id. Deleting an absent id is not an error.
func (c *Controller) DeleteEntry(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.entries.Delete(ctx, id); err != nil {
		return err
	}
	if c.draft != nil && c.draft.entry.ID == id {
		c.closeDraft()
		c.view = ViewAdminList
	}
	if c.current != nil && c.current.ID == id {
		c.current = nil
		if c.view == ViewDetails {
			c.view = ViewHome
		}
	}
	c.results = slices.DeleteFunc(c.results, func(e model.Entry) bool { return e.ID == id })
	if c.view == ViewAdminList {
		if err := c.refreshAdmin(ctx); err != nil {
			c.log.Warn().Err(err).Msg("refresh admin list")
		}
	}
	return nil
}

// SetLanguage sets the language tag of the draft.
func (c *Controller) SetLanguage(lang model.Language) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoDraft
	}
	if !model.ValidLanguages[lang] {
		return model.NewValidationError("language", "must be bn or en")
	}
	c.draft.entry.Language = lang
	c.draft.touched["language"] = true
	return nil
}
