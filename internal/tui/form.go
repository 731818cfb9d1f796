package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/greencarbon/internal/intake"
)

// formFields is bound to the huh form by pointer, so it lives on the heap and
// survives the App being copied through Update.
type formFields struct {
	FilePath string
	Text     string
	Date     string

	loadedPath string // path of the blob currently held in the intake state
}

// newIntakeForm builds the form over f. A fresh form is built after every
// submission so the same values can be edited and sent again.
func newIntakeForm(f *formFields, width int) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("파일 가져오기").
				Description("CSV 파일 경로 (선택)").
				Placeholder("~/spending.csv").
				Value(&f.FilePath).
				Validate(validatePath),
			huh.NewText().
				Title("소비 내역 입력").
				Placeholder("예) 스타벅스 5000원, 배달의민족 15000원, 지하철 1400원").
				Lines(4).
				Value(&f.Text),
			huh.NewInput().
				Title("기본 날짜 (YYYY-MM-DD, 선택)").
				Placeholder("2024-03-01").
				Value(&f.Date),
		),
	).WithShowHelp(true)

	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}

// validatePath accepts an empty path or an existing regular file.
func validatePath(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil
	}
	info, err := os.Stat(expandHome(p))
	if err != nil {
		return errors.New("파일을 찾을 수 없어요")
	}
	if info.IsDir() {
		return errors.New("디렉터리가 아닌 파일을 선택해주세요")
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// apply copies the form values into the intake state. A changed path is re-read
// from disk; an empty path drops the file. It returns the file read error, if any,
// in which case the file is dropped.
func (f *formFields) apply(in *intake.State) error {
	in.SetText(f.Text)
	in.SetDate(f.Date)

	path := strings.TrimSpace(f.FilePath)
	if path == "" {
		in.ClearFile()
		f.loadedPath = ""
		return nil
	}
	if path == f.loadedPath && in.File() != nil {
		return nil
	}

	blob, err := intake.LoadFile(expandHome(path))
	if err != nil {
		in.ClearFile()
		f.loadedPath = ""
		return err
	}
	in.SetFile(blob)
	f.loadedPath = path
	return nil
}
