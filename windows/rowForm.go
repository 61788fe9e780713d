package windows

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tedit/datatable"
)

// errNoChanges is returned by an edit form submitted without edits.
var errNoChanges = errors.New("no fields were changed")

// rowSubmission is the row a form produced.
type rowSubmission struct {
	row *datatable.Row
}

// RowForm edits one row. Without a current row it is an add form and
// submits every filled-in field; with one it is an edit form and submits
// only the fields the user changed.
type RowForm struct {
	window   fyne.Window
	columns  []string
	current  *datatable.Row
	entries  []*widget.Entry
	original []string
	onSubmit func(rowSubmission) error
}

func NewRowForm(w fyne.Window, columns []string, current *datatable.Row, onSubmit func(rowSubmission) error) *RowForm {
	f := &RowForm{
		window:   w,
		columns:  columns,
		current:  current,
		entries:  make([]*widget.Entry, len(columns)),
		original: make([]string, len(columns)),
		onSubmit: onSubmit,
	}
	for i, col := range columns {
		e := widget.NewEntry()
		if current != nil {
			if v, ok := current.Get(col); ok {
				f.original[i] = v.String()
			}
			e.SetText(f.original[i])
		}
		e.SetPlaceHolder(col)
		f.entries[i] = e
	}
	return f
}

// SetField sets the entry for col, reporting whether the form has it.
func (f *RowForm) SetField(col, text string) bool {
	for i, c := range f.columns {
		if c == col {
			f.entries[i].SetText(text)
			return true
		}
	}
	return false
}

// Row collects the submitted fields into a row, coercing each text.
func (f *RowForm) Row() *datatable.Row {
	row := datatable.NewRow()
	for i, col := range f.columns {
		text := f.entries[i].Text
		if f.current == nil {
			if strings.TrimSpace(text) == "" {
				continue
			}
		} else if text == f.original[i] {
			continue
		}
		row.Set(col, datatable.ParseValue(text))
	}
	return row
}

// Submit hands the collected row to the submit callback.
func (f *RowForm) Submit() error {
	row := f.Row()
	if f.current != nil && row.Len() == 0 {
		return errNoChanges
	}
	return f.onSubmit(rowSubmission{row: row})
}

func (f *RowForm) title() string {
	if f.current == nil {
		return "Add row"
	}
	return "Edit row"
}

// Show opens the form. A rejected submission is reported and the form is
// reopened with the user's input intact.
func (f *RowForm) Show() {
	items := make([]*widget.FormItem, len(f.columns))
	for i, col := range f.columns {
		items[i] = widget.NewFormItem(col, f.entries[i])
	}
	d := dialog.NewForm(f.title(), "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		err := f.Submit()
		if err == nil || errors.Is(err, errNoChanges) {
			return
		}
		errDialog := dialog.NewError(err, f.window)
		errDialog.SetOnClosed(f.Show)
		errDialog.Show()
	}, f.window)
	d.Resize(fyne.NewSize(460, 40*float32(len(items)+2)))
	d.Show()
}
