package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/validate"
)

// previewLen is how much of a description the list shows.
const previewLen = 100

// loadNotes fetches notes together with categories, which the notes screen
// needs for names and for the category prompt.
func (a *App) loadNotes(ctx context.Context) error {
	notes, err := a.api.Notes(ctx).Get()
	if err != nil {
		a.report(ctx, "load notes", err)
		return err
	}
	cats, err := a.api.Categories(ctx).Get()
	if err != nil {
		a.report(ctx, "load categories", err)
		return err
	}
	a.notes.SetItems(notes)
	a.categories.SetItems(cats)
	return nil
}

func (a *App) renderNotes() {
	f := a.notes.Filter()
	if f.Query != "" || f.CategoryID != 0 {
		a.printf("Filter: %q, category: %s\n", f.Query, a.categoryLabel(f.CategoryID))
	}

	p := a.notes.Current()
	if p.Total == 0 {
		a.println("No notes found.")
		return
	}
	for _, n := range p.Items {
		a.printf("#%d %s [%s]\n    %s\n", n.ID, n.Name, n.Category.Name, preview(n.Description))
	}
	a.printf("Page %d of %d, %d note(s)\n", p.Page, p.TotalPages, p.Total)
}

func (a *App) categoryLabel(id int64) string {
	if id == 0 {
		return "all"
	}
	for _, c := range a.categories.Items() {
		if c.ID == id {
			return c.Name
		}
	}
	return "#" + strconv.FormatInt(id, 10)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "..."
}

func (a *App) findNote(id int64) (api.Note, bool) {
	for _, n := range a.notes.Items() {
		if n.ID == id {
			return n, true
		}
	}
	a.println("Note not found:", id)
	return api.Note{}, false
}

// promptNote asks for every note field; an empty answer keeps the value
// from current.
func (a *App) promptNote(current api.Note) (api.NoteInput, error) {
	in := api.NoteInput{Name: current.Name, Description: current.Description, Category: current.Category.ID}

	name, err := getSimpleText(a.reader, "Name"+hint(current.Name), a.out)
	if err != nil {
		return in, err
	}
	if name != "" {
		in.Name = name
	}

	desc, err := getMultiline(a.reader, "Description"+hint(preview(current.Description)), a.out)
	if err != nil {
		return in, err
	}
	if desc != "" {
		in.Description = desc
	}

	a.println("Categories:")
	for _, c := range a.categories.Items() {
		a.printf("  %d: %s\n", c.ID, c.Name)
	}
	cat, err := getSimpleText(a.reader, "Category id"+hint(idHint(current.Category.ID)), a.out)
	if err != nil {
		return in, err
	}
	if cat != "" {
		// unparsable ids fall through to validation
		in.Category, _ = strconv.ParseInt(cat, 10, 64)
	}
	return in, nil
}

func (a *App) addNote(ctx context.Context) error {
	in, err := a.promptNote(api.Note{})
	if err != nil {
		return err
	}
	if err := validate.Note(noteForm(in)); err != nil {
		a.report(ctx, "create note", err)
		return err
	}
	if _, err := a.api.CreateNote(ctx, in).Get(); err != nil {
		a.report(ctx, "create note", err)
		return err
	}
	a.println("Note created")
	return a.reloadNotes(ctx)
}

func (a *App) editNote(ctx context.Context, id int64) error {
	n, ok := a.findNote(id)
	if !ok {
		return errNotFound
	}
	in, err := a.promptNote(n)
	if err != nil {
		return err
	}
	if err := validate.Note(noteForm(in)); err != nil {
		a.report(ctx, "update note", err)
		return err
	}
	if _, err := a.api.UpdateNote(ctx, id, in).Get(); err != nil {
		a.report(ctx, "update note", err)
		return err
	}
	a.println("Note updated")
	return a.reloadNotes(ctx)
}

func (a *App) deleteNote(ctx context.Context, id int64) error {
	n, ok := a.findNote(id)
	if !ok {
		return errNotFound
	}
	yes, err := getConfirmation(a.reader, "Delete note \""+n.Name+"\"?", a.out)
	if err != nil || !yes {
		return err
	}
	if _, err := a.api.DeleteNote(ctx, id).Get(); err != nil {
		a.report(ctx, "delete note", err)
		return err
	}
	a.println("Note deleted")
	return a.reloadNotes(ctx)
}

func (a *App) showNote(id int64) error {
	n, ok := a.findNote(id)
	if !ok {
		return errNotFound
	}
	a.printf("#%d %s\nCategory: %s\n\n%s\n", n.ID, n.Name, n.Category.Name, n.Description)
	return nil
}

func (a *App) reloadNotes(ctx context.Context) error {
	if err := a.loadNotes(ctx); err != nil {
		return err
	}
	a.renderNotes()
	return nil
}

func noteForm(in api.NoteInput) validate.NoteForm {
	return validate.NoteForm{Name: in.Name, Description: in.Description, CategoryID: in.Category}
}

func hint(current string) string {
	if strings.TrimSpace(current) == "" {
		return ""
	}
	return " [" + current + "]"
}

func idHint(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
