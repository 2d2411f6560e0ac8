// Package notify provides Notifier implementations.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/mkondo/taskping/internal/domain"
)

// Console writes notifications to a writer, one line per send. Used for
// local runs and as the default backend.
type Console struct {
	out io.Writer
}

// NewConsole creates a console notifier.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Send writes the message prefixed with the owner ID.
func (c *Console) Send(_ context.Context, ownerID, text string) error {
	_, err := fmt.Fprintf(c.out, "[%s] %s\n", ownerID, text)
	return err
}

// Ensure Console implements Notifier.
var _ domain.Notifier = (*Console)(nil)
