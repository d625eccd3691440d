package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/JaimeStill/canopy/internal/risk"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderLevel(level risk.Level, colorize bool) string {
	if !colorize {
		return string(level)
	}
	switch level {
	case risk.High:
		return text.Colors{text.FgRed, text.Bold}.Sprint(level)
	case risk.Medium:
		return text.FgYellow.Sprint(level)
	default:
		return text.FgGreen.Sprint(level)
	}
}
