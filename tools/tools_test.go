package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPassword(t *testing.T) {
	hash, err := PasswordEncrypt("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)
	require.True(t, PasswordCompare(hash, "s3cret!"))
	require.False(t, PasswordCompare(hash, "S3cret!"))
	require.False(t, PasswordCompare("not-a-hash", "s3cret!"))
}

type exportRow struct {
	ID       uint     `excel:"项目ID"`
	Title    string   `excel:"项目名称"`
	Score    *float64 `excel:"平均分"`
	Members  []uint   `excel:"队员"`
	internal string
	Skip     string `excel:"-"`
}

func TestExportToExcel(t *testing.T) {
	score := 8.5
	rows := []exportRow{
		{ID: 1, Title: "alpha", Score: &score, Members: []uint{2, 3}, Skip: "x"},
		{ID: 2, Title: "beta"},
	}
	f := excelize.NewFile()
	require.NoError(t, ExportToExcel(f, "results", rows))

	got, err := f.GetRows("results")
	require.NoError(t, err)
	require.Equal(t, []string{"项目ID", "项目名称", "平均分", "队员"}, got[0])
	require.Equal(t, []string{"1", "alpha", "8.5", "[2 3]"}, got[1])
	require.Equal(t, []string{"2", "beta"}, got[2])
}

func TestExportToExcelEmptyWritesHeader(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, ExportToExcel(f, "", []exportRow{}))
	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestExportToExcelRejectsNonStruct(t *testing.T) {
	require.Error(t, ExportToExcel(excelize.NewFile(), "s", []int{1}))
	require.Error(t, ExportToExcel(excelize.NewFile(), "s", exportRow{}))
}
