package windows

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tedit/config"
	"tedit/store"
	"tedit/visualizer"
)

// ChartDialog picks a category column and a numeric column and opens a
// bar chart of the grouped sums in its own window.
type ChartDialog struct {
	a      fyne.App
	window fyne.Window
	store  *store.TableStore
	opts   visualizer.Options

	x, y *widget.Select
}

func NewChartDialog(a fyne.App, w fyne.Window, st *store.TableStore, cfg config.ChartConfig) *ChartDialog {
	cd := &ChartDialog{
		a:      a,
		window: w,
		store:  st,
		opts:   visualizer.Options{Width: cfg.Width, Height: cfg.Height},
	}
	cd.x = widget.NewSelect(st.Columns(), nil)
	cd.x.PlaceHolder = "Category column"
	cd.y = widget.NewSelect(st.NumericColumns(), nil)
	cd.y.PlaceHolder = "Numeric column"
	return cd
}

// Select preselects the two columns.
func (cd *ChartDialog) Select(xCol, yCol string) {
	cd.x.SetSelected(xCol)
	cd.y.SetSelected(yCol)
}

// Render groups the table by the selected columns and draws the chart.
func (cd *ChartDialog) Render() ([]byte, error) {
	xCol, yCol := cd.x.Selected, cd.y.Selected
	if xCol == "" || yCol == "" {
		return nil, errors.New("choose a column for each axis")
	}
	groups, err := cd.store.Grouped(xCol, yCol)
	if err != nil {
		return nil, err
	}
	return visualizer.RenderPNG(groups, xCol, yCol, cd.opts)
}

func (cd *ChartDialog) Show() {
	items := []*widget.FormItem{
		widget.NewFormItem("X (group by)", cd.x),
		widget.NewFormItem("Y (sum of)", cd.y),
	}
	d := dialog.NewForm("Chart", "Draw", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		png, err := cd.Render()
		if err != nil {
			dialog.ShowError(err, cd.window)
			return
		}
		cd.showImage(png)
	}, cd.window)
	d.Resize(fyne.NewSize(420, 200))
	d.Show()
}

func (cd *ChartDialog) showImage(png []byte) {
	title := fmt.Sprintf("%s by %s", cd.y.Selected, cd.x.Selected)
	img := canvas.NewImageFromResource(fyne.NewStaticResource(title+".png", png))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(cd.opts.Width), float32(cd.opts.Height)))

	w := cd.a.NewWindow(title)
	w.SetContent(container.NewStack(img))
	w.Show()
}
