package sheetprobe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListZipEntries(t *testing.T) {
	t.Parallel()

	h, err := Locate(writeWorkbook(t, "book.xlsx", []string{"Sheet1"}, nil))
	require.NoError(t, err)

	listing, err := ListZipEntries(h, 0)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", listing.Package)
	assert.Contains(t, listing.Names, "xl/workbook.xml")
	assert.Equal(t, listing.Total, len(listing.Names))
	assert.False(t, listing.Truncated())

	capped, err := ListZipEntries(h, 2)
	require.NoError(t, err)
	assert.Len(t, capped.Names, 2)
	assert.Equal(t, listing.Names[:2], capped.Names)
	assert.Equal(t, listing.Total, capped.Total)
	assert.Equal(t, "xlsx", capped.Package, "package hint covers entries past the limit")
	assert.True(t, capped.Truncated())
}

func TestListZipEntries_Corrupt(t *testing.T) {
	t.Parallel()

	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("truncated download")...)
	h, err := Locate(writeBytes(t, "broken.xlsx", data))
	require.NoError(t, err)

	_, err = ListZipEntries(h, 20)
	var ca *CorruptArchiveError
	require.True(t, errors.As(err, &ca))
	assert.Equal(t, FormatZip, ca.Kind)
	assert.Equal(t, "list entries", ca.Op)
}

func TestListCompoundEntries_Corrupt(t *testing.T) {
	t.Parallel()

	data := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 1, 2, 3}
	h, err := Locate(writeBytes(t, "broken.xls", data))
	require.NoError(t, err)

	_, props, _, err := ListCompoundEntries(h, 20)
	var ca *CorruptArchiveError
	require.True(t, errors.As(err, &ca))
	assert.Equal(t, FormatCompound, ca.Kind)
	assert.Empty(t, props)
}

func TestGuessPackage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		names []string
		want  string
	}{
		{names: []string{"[Content_Types].xml", "xl/workbook.xml"}, want: "xlsx"},
		{names: []string{"xl/workbook.xml", "xl/vbaProject.bin"}, want: "xlsm"},
		{names: []string{"xl/workbook.bin"}, want: "xlsb"},
		{names: []string{"word/document.xml"}, want: "docx"},
		{names: []string{"ppt/presentation.xml"}, want: "pptx"},
		{names: []string{"mimetype", "content.xml"}, want: "ods"},
		{names: []string{"readme.txt"}, want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, guessPackage(tt.names), tt.names)
	}
}

func TestPrintableName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `\x05SummaryInformation`, printableName("\x05SummaryInformation"))
	assert.Equal(t, "Workbook", printableName("Workbook"))
	assert.Equal(t, "xls", compoundPackage("Workbook"))
	assert.Equal(t, "", compoundPackage("Data"))
}
