package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testHeader = []interface{}{
	"province", "population_group",
	"employed_male", "employed_female", "employed_total",
	"unemployed_male", "unemployed_female", "unemployed_total",
	"active_male", "active_female", "active_total",
}

func writeTestWorkbook(t *testing.T, sheetName string, dataRows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	require.NoError(t, f.SetSheetRow(sheetName, "A1", &testHeader))
	for i, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "qlfs_clean.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeTestWorkbook(t, "QLFS", [][]interface{}{
		{"Western Cape", "Black African", "800000", "774457", "1574457", "180000", "203823", "383823", "980000", "978280", "1958280"},
		{"North West", "Black African", "500,000", "300,000", "800,000", "250,000", "300,000", "550,000", "750,000", "600,000", "1,350,000"},
	})

	observations, stats, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, observations, 2)

	assert.Equal(t, 2, stats.RowsRead)
	assert.Equal(t, 2, stats.RowsKept)
	assert.Equal(t, 0, stats.Skipped())

	wc := observations[0]
	assert.Equal(t, "Western Cape", wc.Province)
	assert.Equal(t, "Black African", wc.PopulationGroup)
	assert.InDelta(t, 383823, wc.UnemployedTotal, 1e-9)
	assert.InDelta(t, 1958280, wc.ActiveTotal, 1e-9)

	// Thousands separators are tolerated.
	nw := observations[1]
	assert.InDelta(t, 550000, nw.UnemployedTotal, 1e-9)
	assert.InDelta(t, 1350000, nw.ActiveTotal, 1e-9)
}

func TestParseWorkbookFindsSheetByContract(t *testing.T) {
	// A sheet name outside the preferred list must still be found by
	// scanning for the header contract.
	path := writeTestWorkbook(t, "Q3 2024", [][]interface{}{
		{"Gauteng", "White", "", "", "900000", "", "", "70000", "", "", "970000"},
	})

	observations, _, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.InDelta(t, 0, observations[0].EmployedMale, 1e-9, "empty cells are structural zeros")
	assert.InDelta(t, 900000, observations[0].EmployedTotal, 1e-9)
}

func TestParseWorkbookMalformedRows(t *testing.T) {
	path := writeTestWorkbook(t, "QLFS", [][]interface{}{
		{"Western Cape", "Coloured", "1", "2", "3", "4", "5", "9", "5", "7", "12"},
		{"", "Coloured", "1", "2", "3", "4", "5", "9", "5", "7", "12"},            // missing province
		{"Limpopo", "", "1", "2", "3", "4", "5", "9", "5", "7", "12"},             // missing group
		{"Limpopo", "Black African", "1", "2", "3", "4", "5", "oops", "5", "7", "12"}, // non-numeric count
		{"Limpopo", "Black African", "1", "2", "3", "4", "5", "-9", "5", "7", "12"},   // negative count
	})

	observations, stats, err := ParseWorkbook(path)
	require.NoError(t, err, "malformed rows must not fail the run")

	require.Len(t, observations, 1)
	assert.Equal(t, "Western Cape", observations[0].Province)

	assert.Equal(t, 5, stats.RowsRead)
	assert.Equal(t, 1, stats.RowsKept)
	assert.Equal(t, 2, stats.SkippedMissingKey)
	assert.Equal(t, 2, stats.SkippedBadCount)
}

func TestParseWorkbookNoDataSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "nothing to see"))
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, _, err := ParseWorkbook(path)
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	csvData := "province,population_group,employed_male,employed_female,employed_total," +
		"unemployed_male,unemployed_female,unemployed_total,active_male,active_female,active_total\n" +
		"Western Cape,Black African,800000,774457,1574457,180000,203823,383823,980000,978280,1958280\n" +
		",Black African,1,1,2,1,1,2,2,2,4\n" +
		"Free State,White,1,1,2,1,x,2,2,2,4\n"

	path := filepath.Join(t.TempDir(), "qlfs_clean.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0644))

	observations, stats, err := ParseCSV(path)
	require.NoError(t, err)

	require.Len(t, observations, 1)
	assert.Equal(t, "Western Cape", observations[0].Province)
	assert.Equal(t, 3, stats.RowsRead)
	assert.Equal(t, 1, stats.SkippedMissingKey)
	assert.Equal(t, 1, stats.SkippedBadCount)
}

func TestParseCSVBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	_, _, err := ParseCSV(path)
	assert.Error(t, err)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		cell    string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"42", 42, false},
		{"1,350,000", 1350000, false},
		{"12 500", 12500, false},
		{"3.5", 3.5, false},
		{"oops", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := parseCount(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
