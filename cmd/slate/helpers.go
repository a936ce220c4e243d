package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slate/internal/api"
)

var titleCaser = cases.Title(language.English)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parseTakeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid take id %q", arg)
	}
	return id, nil
}

func statusLabel(value string) string {
	if value == "" {
		return "-"
	}
	return titleCaser.String(value)
}

func formatDurationCell(take api.Take) string {
	if take.DurationSeconds == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fs", *take.DurationSeconds)
}

func formatConfidenceCell(take api.Take) string {
	if take.ConfidenceScore == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *take.ConfidenceScore)
}

func boolLabel(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
