package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"StickerCut/internal/logging"
	"StickerCut/internal/studio"
)

// RunApp opens the editor window and blocks until it is closed. When
// imagePath is not empty that image is loaded at start-up.
func RunApp(ctx context.Context, st *studio.Studio, imagePath string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("StickerCut")
	myWindow.Resize(fyne.NewSize(1200, 800))

	outline := NewOutlineWidget(st)
	status := widget.NewLabel("Open an image to start")
	toolbar, params := NewToolbar(myWindow, st)

	st.OnChange = func() {
		outline.Refresh()
		h := st.History()
		status.SetText(fmt.Sprintf("%d paths, %d nodes, history %d/%d",
			len(st.Document().Paths()), st.Document().NodeCount(), h.Cursor()+1, h.Len()))
	}

	// Generation results come back on the studio's channel and are
	// applied on the UI goroutine.
	go func() {
		for {
			select {
			case res := <-st.Results():
				fyne.Do(func() { st.Apply(res) })
			case <-ctx.Done():
				return
			}
		}
	}()

	if imagePath != "" {
		if err := st.LoadFile(imagePath); err != nil {
			logging.Logger().Error("load image", "path", imagePath, "err", err)
			status.SetText(err.Error())
		}
	}

	side := container.NewVScroll(params)
	side.SetMinSize(fyne.NewSize(190, 0))
	content := container.NewBorder(toolbar, status, side, nil, outline)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
