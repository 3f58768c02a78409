package sheetprobe

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// RenderMarkdown renders r as a Markdown report.
func RenderMarkdown(r *ProbeResult) string {
	var b strings.Builder

	b.WriteString("# Spreadsheet Probe Report\n\n")
	b.WriteString("## File\n\n")
	b.WriteString(fmt.Sprintf("- Path: %s\n", r.File.Path))
	b.WriteString(fmt.Sprintf("- Exists: %t\n", r.File.Exists))
	b.WriteString(fmt.Sprintf("- Size: %s (%s bytes)\n", humanize.Bytes(uint64(r.File.Size)), humanize.Comma(r.File.Size)))
	b.WriteString(fmt.Sprintf("- First %d bytes: `%s`\n", len(r.Signature), r.Signature.Hex()))
	b.WriteString(fmt.Sprintf("- Magic: `%x`\n", r.Signature.Magic()))
	b.WriteString(fmt.Sprintf("- Guessed type: %s\n", r.Kind.Description()))
	if r.Entries != nil && r.Entries.Package != "" {
		b.WriteString(fmt.Sprintf("- Package: %s\n", r.Entries.Package))
	}

	if r.Entries != nil || r.EntriesErr != nil {
		b.WriteString("\n## Entries\n\n")
		if r.EntriesErr != nil {
			b.WriteString(fmt.Sprintf("_Error: %s_\n", escapeMarkdownCell(r.EntriesErr.Error())))
		} else {
			for _, name := range r.Entries.Names {
				b.WriteString(fmt.Sprintf("- `%s`\n", name))
			}
			if r.Entries.Truncated() {
				b.WriteString(fmt.Sprintf("\n_Showing %d of %d entries._\n", len(r.Entries.Names), r.Entries.Total))
			}
		}
	}

	if len(r.Properties) > 0 || r.PropertiesErr != nil {
		b.WriteString("\n## Properties\n\n")
		if len(r.Properties) > 0 {
			b.WriteString("| Name | Value |\n")
			b.WriteString("| --- | --- |\n")
			for _, p := range r.Properties {
				b.WriteString(fmt.Sprintf("| %s | %s |\n", escapeMarkdownCell(p.Name), escapeMarkdownCell(p.Value)))
			}
		}
		if r.PropertiesErr != nil {
			b.WriteString(fmt.Sprintf("\n_Error: %s_\n", escapeMarkdownCell(r.PropertiesErr.Error())))
		}
	}

	if r.PreviewErr != nil {
		b.WriteString("\n## Sheets\n\n")
		b.WriteString(fmt.Sprintf("_Preview unavailable: %s_\n", escapeMarkdownCell(r.PreviewErr.Error())))
		return b.String()
	}
	if !r.Kind.IsSpreadsheetCandidate() {
		return b.String()
	}

	b.WriteString("\n## Sheets\n\n")
	b.WriteString("| # | Name | Rows shown | Notes |\n")
	b.WriteString("| ---: | --- | ---: | --- |\n")
	for _, s := range r.Sheets {
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n", s.Index+1, escapeMarkdownCell(s.Name), len(s.Rows), sheetNotes(s)))
	}

	for _, s := range r.Sheets {
		b.WriteString(fmt.Sprintf("\n### %s\n\n", escapeMarkdownCell(s.Name)))
		switch {
		case s.Err != nil:
			b.WriteString(fmt.Sprintf("_Error: %s_\n", escapeMarkdownCell(s.Err.Error())))
			if len(s.Rows) == 0 {
				continue
			}
			b.WriteString("\n")
		case s.Empty:
			b.WriteString("_(empty sheet)_\n")
			continue
		}
		writeRowsTable(&b, s.Rows)
		if s.Truncated {
			b.WriteString(fmt.Sprintf("\n_First %d rows shown._\n", len(s.Rows)))
		}
	}

	return b.String()
}

func sheetNotes(s SheetPreview) string {
	var notes []string
	if s.Hidden {
		notes = append(notes, "hidden")
	}
	if s.Empty {
		notes = append(notes, "empty")
	}
	if s.Truncated {
		notes = append(notes, "truncated")
	}
	if s.Err != nil {
		notes = append(notes, "error")
	}
	return strings.Join(notes, ", ")
}

func writeRowsTable(b *strings.Builder, rows []Row) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Values))
	}

	b.WriteString("| Row |")
	for col := 0; col < width; col++ {
		b.WriteString(" ")
		b.WriteString(columnLetter(col))
		b.WriteString(" |")
	}
	b.WriteString("\n| ---: |")
	for col := 0; col < width; col++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("| %d |", row.Number))
		cells := rowStrings(row)
		for col := 0; col < width; col++ {
			v := ""
			if col < len(cells) {
				v = escapeMarkdownCell(cells[col])
			}
			b.WriteString(" ")
			b.WriteString(v)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}

func columnLetter(colIdx int) string {
	result := ""
	for {
		result = string(rune('A'+colIdx%26)) + result
		colIdx = colIdx/26 - 1
		if colIdx < 0 {
			break
		}
	}
	return result
}
