package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UI prints status lines. Everything goes to the error stream so the
// output file is the only artifact of a run.
type UI struct {
	Err          io.Writer
	Output       *termenv.Output
	ColorEnabled bool
}

func New(err io.Writer, mode ColorMode) *UI {
	output := termenv.NewOutput(err)
	return &UI{
		Err:          err,
		Output:       output,
		ColorEnabled: shouldEnableColor(output, mode),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	u.printf("1", format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.printf("3", format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.printf("4", format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.printf("2", format, args...)
}

func (u *UI) printf(color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	if u.ColorEnabled {
		msg = u.Output.String(msg).Foreground(u.Output.Color(color)).String()
	}
	fmt.Fprintln(u.Err, msg)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
