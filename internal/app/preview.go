package app

import (
	"Clipvault/internal/model"
	"os/exec"
	"path/filepath"
	"runtime"
)

// openPreview 用系统查看器打开图片和它所在的目录。目录视图翻伙伴图
// 比在终端里逐张加载高效得多，也方便直接拖进反向搜图
func (a *PostingApp) openPreview(img *model.ClipartImage) error {
	imagePath := img.ConvertedPath(a.cfg.Images.BaseDir)
	if err := openWithViewer(filepath.Dir(imagePath)); err != nil {
		return err
	}
	return openWithViewer(imagePath)
}

func openWithViewer(path string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	case "darwin":
		return exec.Command("open", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}
