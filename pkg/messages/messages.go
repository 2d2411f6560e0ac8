// Package messages provides the localized text catalog for notifier output.
package messages

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Catalog resolves user-facing message templates for one language.
type Catalog struct {
	localizer *i18n.Localizer
}

// NewCatalog loads the embedded message files and returns a catalog for
// the given language tag, falling back to English.
func NewCatalog(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", e.Name(), err)
		}
	}

	return &Catalog{localizer: i18n.NewLocalizer(bundle, lang, "en")}, nil
}

func (c *Catalog) localize(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

// DueReminder is the due-instant reminder text.
func (c *Catalog) DueReminder(title string) string {
	return c.localize("ReminderDue", map[string]any{"Title": title})
}

// EarlyReminder is the 30-minutes-before reminder text for high priority tasks.
func (c *Catalog) EarlyReminder(title string) string {
	return c.localize("ReminderEarly", map[string]any{"Title": title})
}

// DigestHeader opens the daily digest message.
func (c *Catalog) DigestHeader(count int) string {
	return c.localize("DigestHeader", map[string]any{"Count": count})
}

// TaskAdded confirms a created task on the command channel.
func (c *Catalog) TaskAdded(id int, title string) string {
	return c.localize("TaskAdded", map[string]any{"ID": id, "Title": title})
}

// TaskDone confirms a completed task on the command channel.
func (c *Catalog) TaskDone(id int, title string) string {
	return c.localize("TaskDone", map[string]any{"ID": id, "Title": title})
}

// TaskSnoozed confirms a rescheduled task; due is already formatted in
// the owner's local time.
func (c *Catalog) TaskSnoozed(id int, due string) string {
	return c.localize("TaskSnoozed", map[string]any{"ID": id, "Due": due})
}

// TaskDeleted confirms a removed task on the command channel.
func (c *Catalog) TaskDeleted(id int) string {
	return c.localize("TaskDeleted", map[string]any{"ID": id})
}

// NoOpenTasks is the reply for an empty listing.
func (c *Catalog) NoOpenTasks() string {
	return c.localize("NoOpenTasks", nil)
}

// NothingUnderstood is the try-again response for failed extraction or
// transcription.
func (c *Catalog) NothingUnderstood() string {
	return c.localize("NothingUnderstood", nil)
}
