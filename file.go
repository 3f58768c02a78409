package sheetprobe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

type signature struct {
	magic []byte
	kind  FormatKind
}

// Checked in order, first match wins.
var signatures = []signature{
	{magic: []byte{0x50, 0x4B, 0x03, 0x04}, kind: FormatZip},
	{magic: []byte{0x50, 0x4B, 0x05, 0x06}, kind: FormatZipEmpty},
	{magic: []byte{0xD0, 0xCF, 0x11, 0xE0}, kind: FormatCompound},
	{magic: []byte{0x25, 0x50, 0x44, 0x46}, kind: FormatPDF},
}

// Locate stats path and fails with *NotFoundError unless it is an existing,
// readable regular file.
func Locate(path string) (FileHandle, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileHandle{Path: path}, &NotFoundError{Path: path, Reason: "does not exist", Err: err}
		}
		return FileHandle{Path: path}, &NotFoundError{Path: path, Reason: "cannot stat", Err: err}
	}
	if !fi.Mode().IsRegular() {
		return FileHandle{Path: path}, &NotFoundError{Path: path, Reason: "not a regular file"}
	}
	f, err := os.Open(path)
	if err != nil {
		return FileHandle{Path: path}, &NotFoundError{Path: path, Reason: "not readable", Err: err}
	}
	f.Close()
	return FileHandle{Path: path, Exists: true, Size: fi.Size()}, nil
}

// Classify reads up to SignatureLen leading bytes of h and matches them
// against the known magic numbers. The extension is never consulted.
func Classify(h FileHandle) (Signature, FormatKind, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("open %s: %w", h.Path, err)
	}
	defer f.Close()

	buf := make([]byte, SignatureLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, FormatUnknown, fmt.Errorf("read signature of %s: %w", h.Path, err)
	}
	sig := Signature(buf[:n])
	return sig, MatchSignature(sig), nil
}

// MatchSignature maps leading bytes to a FormatKind.
func MatchSignature(sig []byte) FormatKind {
	for _, s := range signatures {
		if bytes.HasPrefix(sig, s.magic) {
			return s.kind
		}
	}
	return FormatUnknown
}
