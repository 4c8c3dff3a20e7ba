package components

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devshahoriar/custom-form/upload"
)

var dropZoneIDs atomic.Int64

// UploadedMsg is the continuation of an upload started by a DropZone.
type UploadedMsg struct {
	zone int64
	gen  int
	Name string
	File upload.File
	Err  error
}

// RemovedMsg is the continuation of a removal started by a DropZone.
type RemovedMsg struct {
	zone  int64
	gen   int
	File  upload.File
	Index int
	Err   error
}

// DropZone attaches files through an Uploader. The user types a path and
// presses enter; ctrl+x removes the last attached file.
//
// Continuations are tagged with the zone id and a generation. Load and
// Close start a new generation and cancel outstanding work, so a late
// continuation never touches a tree it was not started for.
type DropZone struct {
	Label    string
	MaxFiles int

	path     string
	id       int64
	gen      int
	ctx      context.Context
	cancel   context.CancelFunc
	uploader upload.Uploader
	input    textinput.Model
	spinner  spinner.Model
	pending  int
	localErr string
	styles   Styles
}

// NewDropZone creates a drop zone bound to path. maxFiles <= 0 means one.
func NewDropZone(path, label string, up upload.Uploader, maxFiles int, styles Styles) *DropZone {
	if maxFiles <= 0 {
		maxFiles = 1
	}
	ti := textinput.New()
	ti.Placeholder = "path/to/file.png"
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	d := &DropZone{
		Label:    label,
		MaxFiles: maxFiles,
		path:     path,
		id:       dropZoneIDs.Add(1),
		uploader: up,
		input:    ti,
		spinner:  sp,
		styles:   styles,
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

func (d *DropZone) Path() string  { return d.path }
func (d *DropZone) Focused() bool { return d.input.Focused() }

// Busy reports whether an upload or removal is in flight.
func (d *DropZone) Busy() bool { return d.pending > 0 }

// Load starts a new generation. Work started for the previous tree is
// cancelled and its continuations are dropped.
func (d *DropZone) Load(Binding) {
	d.cancel()
	d.gen++
	d.pending = 0
	d.localErr = ""
	d.input.SetValue("")
	d.ctx, d.cancel = context.WithCancel(context.Background())
}

// Close cancels outstanding work for good.
func (d *DropZone) Close() {
	d.cancel()
	d.gen++
	d.pending = 0
}

func (d *DropZone) Focus() tea.Cmd { return d.input.Focus() }

func (d *DropZone) Blur(b Binding) {
	d.input.Blur()
	b.Touch(d.path)
}

// Files returns the descriptors currently bound.
func (d *DropZone) Files(b Binding) []upload.File {
	return upload.AsFiles(b.Value(d.path))
}

func (d *DropZone) Update(msg tea.Msg, b Binding) tea.Cmd {
	switch msg := msg.(type) {
	case UploadedMsg:
		if msg.zone != d.id {
			return nil
		}
		return d.uploaded(msg, b)
	case RemovedMsg:
		if msg.zone != d.id {
			return nil
		}
		d.removed(msg, b)
		return nil
	case spinner.TickMsg:
		if !d.Busy() {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if !d.input.Focused() {
			return nil
		}
		switch msg.String() {
		case "enter":
			return d.startUpload(b)
		case "ctrl+x":
			return d.startRemove(b)
		}
	}

	if !d.input.Focused() {
		return nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (d *DropZone) startUpload(b Binding) tea.Cmd {
	name := strings.TrimSpace(d.input.Value())
	if name == "" {
		return nil
	}
	if len(d.Files(b))+d.pending >= d.MaxFiles {
		d.localErr = fmt.Sprintf("Only %d file(s) can be attached", d.MaxFiles)
		return nil
	}
	d.localErr = ""
	d.input.SetValue("")
	d.pending++

	ctx, up, zone, gen := d.ctx, d.uploader, d.id, d.gen
	run := func() tea.Msg {
		f, err := os.Open(name)
		if err != nil {
			return UploadedMsg{zone: zone, gen: gen, Name: name, Err: err}
		}
		defer f.Close()
		file, err := up.Upload(ctx, filepath.Base(name), f)
		return UploadedMsg{zone: zone, gen: gen, Name: name, File: file, Err: err}
	}
	return tea.Batch(run, d.spinner.Tick)
}

func (d *DropZone) uploaded(msg UploadedMsg, b Binding) tea.Cmd {
	if msg.gen != d.gen {
		// Orphaned upload: the tree it was meant for is gone.
		if msg.Err == nil && msg.File.ID != "" {
			up, file := d.uploader, msg.File
			return func() tea.Msg {
				_ = up.Remove(context.Background(), file.ID, file.URL)
				return nil
			}
		}
		return nil
	}
	d.pending--
	if msg.Err != nil {
		d.localErr = fmt.Sprintf("Upload failed: %v", msg.Err)
		return nil
	}
	files := append(append([]upload.File(nil), d.Files(b)...), msg.File)
	if err := b.SetValue(d.path, files); err != nil {
		d.localErr = writeError(err)
		up, file := d.uploader, msg.File
		return func() tea.Msg {
			_ = up.Remove(context.Background(), file.ID, file.URL)
			return nil
		}
	}
	return nil
}

// startRemove detaches the last file right away and asks the uploader to
// delete it. A failed removal puts the descriptor back.
func (d *DropZone) startRemove(b Binding) tea.Cmd {
	files := d.Files(b)
	if len(files) == 0 {
		return nil
	}
	idx := len(files) - 1
	file := files[idx]
	if err := b.SetValue(d.path, upload.Without(files, file.ID)); err != nil {
		d.localErr = writeError(err)
		return nil
	}
	d.localErr = ""
	d.pending++

	ctx, up, zone, gen := d.ctx, d.uploader, d.id, d.gen
	run := func() tea.Msg {
		err := up.Remove(ctx, file.ID, file.URL)
		return RemovedMsg{zone: zone, gen: gen, File: file, Index: idx, Err: err}
	}
	return tea.Batch(run, d.spinner.Tick)
}

func (d *DropZone) removed(msg RemovedMsg, b Binding) {
	if msg.gen != d.gen {
		return
	}
	d.pending--
	if msg.Err == nil {
		return
	}
	files := d.Files(b)
	idx := msg.Index
	if idx > len(files) {
		idx = len(files)
	}
	restored := make([]upload.File, 0, len(files)+1)
	restored = append(restored, files[:idx]...)
	restored = append(restored, msg.File)
	restored = append(restored, files[idx:]...)
	if err := b.SetValue(d.path, restored); err != nil {
		d.localErr = writeError(err)
		return
	}
	d.localErr = fmt.Sprintf("Could not remove %s: %v", filepath.Base(msg.File.URL), msg.Err)
}

func (d *DropZone) View(width int, b Binding) string {
	w := fieldWidth(width)
	d.input.Width = w - 4

	var body string
	files := d.Files(b)
	if len(files) == 0 {
		body = d.styles.Hint.Render("Drop a file path here and press enter")
	}
	for i, f := range files {
		if i > 0 {
			body += "\n"
		}
		body += d.styles.Success.Render("✓ ") + d.styles.Value.Render(filepath.Base(f.URL))
	}
	if d.Busy() {
		body += "\n" + d.spinner.View() + " " + d.styles.Hint.Render("working…")
	}
	body += "\n" + d.input.View()

	out := d.styles.label(d.Label, d.Focused()) + "\n"
	out += "  " + d.styles.box(d.Focused()).Width(w).Render(body) + "\n"
	out += d.styles.errorLine(firstError(d.localErr, b, d.path))
	return out
}
