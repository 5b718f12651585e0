package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Label,Height,Width\nA,10,20\nB,30,40\n", ','},
		{"semicolon", "Label;Height;Width\nA;10;20\nB;30;40\n", ';'},
		{"tab", "Label\tHeight\tWidth\nA\t10\t20\nB\t30\t40\n", '\t'},
		{"pipe", "Label|Height|Width\nA|10|20\nB|30|40\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

func TestDetectColumns_Headers(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Qty", "WIDTH", "Name", "Height", "Peso"})
	require.True(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 2, Height: 3, Width: 1, Quantity: 0, Weight: 4}, mapping)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Door", "100", "200"})
	assert.False(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 0, Height: 1, Width: 2, Quantity: 3, Weight: 4}, mapping)
}

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Height,Width,Qty,Weight\nDoor,100,200,2,\nShelf,50,80,1,7.5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)
	assert.Equal(t, "Door #1", result.Pieces[0].Label)
	assert.Equal(t, "Door #2", result.Pieces[1].Label)
	assert.Equal(t, 100, result.Pieces[0].Height)
	assert.Equal(t, 200, result.Pieces[0].Width)
	assert.False(t, result.Pieces[0].HasWeight)

	assert.Equal(t, "Shelf", result.Pieces[2].Label)
	assert.True(t, result.Pieces[2].HasWeight)
	assert.Equal(t, 7.5, result.Pieces[2].Weight)
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Height,Width\n10,20\n"), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, "P1", result.Pieces[0].Label)
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,10,20,1\nB,30,40,2\n"), ',')
	require.Empty(t, result.Errors)
	assert.Len(t, result.Pieces, 3)
}

func TestImportCSVFromReader_RoundsFractionalDimensions(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Height,Width\n10.6,20\n"), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, 11, result.Pieces[0].Height)
	assert.Contains(t, strings.Join(result.Warnings, "\n"), "rounded to 11")
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := strings.Join([]string{
		"Label,Height,Width,Qty,Weight",
		"ok,10,10,1,",
		"badheight,abc,10,1,",
		"missingwidth,10,,1,",
		"negative,-5,10,1,",
		"zeroqty,10,10,0,",
		"badweight,10,10,1,x",
		"",
		"ok2,20,20,,",
	}, "\n")
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	assert.Len(t, result.Pieces, 2)
	assert.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Line 3")
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Height,Qty\nA,10,1\n"), ',')
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Width")
	assert.Empty(t, result.Pieces)
}

func TestImportCSVFromReader_Empty(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	require.NoError(t, os.WriteFile(path, []byte("Label;Height;Width\nA;10;20\nB;30;40\n"), 0o644))

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	assert.Len(t, result.Pieces, 2)
	assert.Contains(t, result.Warnings, "Detected semicolon delimiter")
}

func TestImportCSV_FileErrors(t *testing.T) {
	dir := t.TempDir()
	assert.NotEmpty(t, ImportCSV(filepath.Join(dir, "missing.csv")).Errors)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	assert.Equal(t, []string{"File is empty"}, ImportCSV(empty).Errors)
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pieces.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, cell))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Height", "Width", "Quantity"},
		{"Door", 100, 200, 2},
		{"Shelf", 50, 80, 1},
	})

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)
	assert.Equal(t, "Shelf", result.Pieces[2].Label)
	assert.Equal(t, 80, result.Pieces[2].Width)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.NotEmpty(t, result.Errors)
}
