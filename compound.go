package sheetprobe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

// ListCompoundEntries walks the directory of an OLE compound file. Stream
// paths are joined with "/". Property set streams such as
// "\x05SummaryInformation" are decoded into properties; a property set that
// fails to decode is skipped and reported as propErr.
func ListCompoundEntries(h FileHandle, limit int) (listing EntryListing, props []Property, propErr error, err error) {
	if limit <= 0 {
		limit = DefaultEntryLimit
	}

	f, err := os.Open(h.Path)
	if err != nil {
		return EntryListing{}, nil, nil, fmt.Errorf("open %s: %w", h.Path, err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return EntryListing{}, nil, nil, &CorruptArchiveError{Path: h.Path, Kind: FormatCompound, Op: "list entries", Err: err}
	}

	seen := make(map[string]bool)
	ps := msoleps.New()
	for {
		entry, nerr := doc.Next()
		if nerr != nil {
			if !errors.Is(nerr, io.EOF) {
				return listing, props, propErr, &CorruptArchiveError{Path: h.Path, Kind: FormatCompound, Op: "read directory", Err: nerr}
			}
			break
		}
		listing.Total++
		if len(listing.Names) < limit {
			listing.Names = append(listing.Names, entryPath(entry))
		}
		if listing.Package == "" && len(entry.Path) == 0 {
			listing.Package = compoundPackage(entry.Name)
		}
		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		if rerr := ps.Reset(doc); rerr != nil {
			if propErr == nil {
				propErr = fmt.Errorf("property set %q: %w", printableName(entry.Name), rerr)
			}
			continue
		}
		for _, p := range ps.Property {
			if p == nil || p.Name == "" || seen[p.Name] {
				continue
			}
			v := strings.TrimSpace(p.String())
			if v == "" {
				continue
			}
			seen[p.Name] = true
			props = append(props, Property{Name: p.Name, Value: v})
		}
	}
	return listing, props, propErr, nil
}

func entryPath(e *mscfb.File) string {
	parts := make([]string, 0, len(e.Path)+1)
	for _, p := range e.Path {
		parts = append(parts, printableName(p))
	}
	parts = append(parts, printableName(e.Name))
	return strings.Join(parts, "/")
}

// printableName escapes the control characters OLE uses to prefix
// reserved stream names.
func printableName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// compoundPackage names the legacy office format owning a root stream.
func compoundPackage(stream string) string {
	switch stream {
	case "Workbook", "Book":
		return "xls"
	case "WordDocument":
		return "doc"
	case "PowerPoint Document":
		return "ppt"
	}
	return ""
}
