package sheetprobe

import (
	"strings"

	"github.com/klauspost/compress/zip"
)

// ListZipEntries enumerates archive entry names in directory order, keeping
// at most limit names. Total and Package always cover the whole archive.
func ListZipEntries(h FileHandle, limit int) (EntryListing, error) {
	if limit <= 0 {
		limit = DefaultEntryLimit
	}

	r, err := zip.OpenReader(h.Path)
	if err != nil {
		return EntryListing{}, &CorruptArchiveError{Path: h.Path, Kind: FormatZip, Op: "list entries", Err: err}
	}
	defer r.Close()

	listing := EntryListing{
		Names: make([]string, 0, min(limit, len(r.File))),
		Total: len(r.File),
	}
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
		if len(listing.Names) < limit {
			listing.Names = append(listing.Names, f.Name)
		}
	}
	listing.Package = guessPackage(names)
	return listing, nil
}

// guessPackage names the office package a zip most likely holds.
func guessPackage(names []string) string {
	has := make(map[string]bool, len(names))
	for _, n := range names {
		has[strings.ToLower(n)] = true
	}
	switch {
	case has["xl/workbook.bin"]:
		return "xlsb"
	case has["xl/vbaproject.bin"] && has["xl/workbook.xml"]:
		return "xlsm"
	case has["xl/workbook.xml"]:
		return "xlsx"
	case has["word/document.xml"]:
		return "docx"
	case has["ppt/presentation.xml"]:
		return "pptx"
	case has["mimetype"] && has["content.xml"]:
		return "ods"
	}
	return ""
}
