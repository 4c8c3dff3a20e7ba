package employee

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Directory answers uniqueness questions about existing employees.
type Directory interface {
	UserNameTaken(ctx context.Context, name string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// StaticDirectory is an in-memory Directory with a simulated lookup
// latency.
type StaticDirectory struct {
	UserNames []string
	Emails    []string
	Latency   time.Duration
}

// DefaultDirectory returns the canned directory used when none is
// configured.
func DefaultDirectory() *StaticDirectory {
	return &StaticDirectory{
		UserNames: []string{"john_doe", "jane_smith", "admin"},
		Emails:    []string{"admin@admin.com", "root@root.com"},
		Latency:   500 * time.Millisecond,
	}
}

// UserNameTaken reports whether name is already registered.
func (d *StaticDirectory) UserNameTaken(ctx context.Context, name string) (bool, error) {
	if err := d.wait(ctx); err != nil {
		return false, err
	}
	return slices.Contains(d.UserNames, name), nil
}

// EmailTaken reports whether email is already registered. Comparison
// ignores case.
func (d *StaticDirectory) EmailTaken(ctx context.Context, email string) (bool, error) {
	if err := d.wait(ctx); err != nil {
		return false, err
	}
	return slices.ContainsFunc(d.Emails, func(e string) bool {
		return strings.EqualFold(e, email)
	}), nil
}

func (d *StaticDirectory) wait(ctx context.Context) error {
	if d.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
