package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"StickerCut/internal/logging"
	"StickerCut/internal/studio"
)

var errNothingToExport = errors.New("nothing to export: load an image and generate an outline first")

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

func dialogError(win fyne.Window, err error) {
	dialog.ShowError(err, win)
}

func openImage(win fyne.Window, st *studio.Studio) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialogError(win, err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		if err := st.LoadImage(reader); err != nil {
			dialogError(win, fmt.Errorf("%s: %w", reader.URI().Name(), err))
			return
		}
		win.SetTitle("StickerCut - " + reader.URI().Name())
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

// saveFile asks for a destination and writes the bytes produced by
// export. ok=false from export means there is nothing to save.
func saveFile(win fyne.Window, name string, export func() ([]byte, bool, error)) {
	data, ok, err := export()
	if err != nil {
		dialogError(win, err)
		return
	}
	if !ok {
		dialogError(win, errNothingToExport)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialogError(win, err)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logging.Logger().Error("close export", "err", err)
			}
		}()
		if _, err := writer.Write(data); err != nil {
			dialogError(win, fmt.Errorf("write %s: %w", writer.URI().Name(), err))
			return
		}
		logging.Logger().Info("exported", "file", writer.URI().Name(), "bytes", len(data))
	}, win)
	d.SetFileName(name)
	d.Show()
}

func saveSVG(win fyne.Window, st *studio.Studio, trimmed bool) {
	name, export := "outline.svg", st.ExportAligned
	if trimmed {
		name, export = "outline-trimmed.svg", st.ExportTrimmed
	}
	saveFile(win, name, func() ([]byte, bool, error) {
		svg, ok := export()
		return []byte(svg), ok, nil
	})
}

func savePDF(win fyne.Window, st *studio.Studio) {
	saveFile(win, "outline.pdf", st.ExportPage)
}

func savePreview(win fyne.Window, st *studio.Studio) {
	saveFile(win, "outline.png", st.ExportPreview)
}
