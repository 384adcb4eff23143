package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValidateCatalogFile_CSV(t *testing.T) {
	csv := "\ufeffCategory *,Name *,Qty,Unit,Price,Note,Sub_Items\n" +
		"audio,無線麥克風,2,支,\"1,500\",含接收器,3號電池 (AA)|麥架 (長)\n" +
		"video,投影機,,,12000,,\n"

	result, err := ValidateCatalogFile(strings.NewReader(csv), "catalog.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.ValidRows)
	assert.Equal(t, 0, result.ErrorRows)
	require.Len(t, result.Options, 2)

	mic := result.Options[0]
	assert.Equal(t, CategoryAudio, mic.Category)
	assert.Equal(t, 2.0, mic.Quantity)
	assert.Equal(t, 1500.0, mic.Price)
	assert.Equal(t, "含接收器", mic.Note)
	assert.Equal(t, []string{"3號電池 (AA)", "麥架 (長)"}, mic.SubItems)

	projector := result.Options[1]
	assert.Equal(t, CategoryProjection, projector.Category)
	assert.Equal(t, 1.0, projector.Quantity)
	assert.Equal(t, "式", projector.Unit)
	assert.Empty(t, projector.SubItems)
}

func TestValidateCatalogFile_ChineseHeaders(t *testing.T) {
	csv := "類別,品名,數量,單位,單價,備註,配件\n" +
		"lighting,染色燈,8,顆,1000,,\n"

	result, err := ValidateCatalogFile(strings.NewReader(csv), "燈光.CSV")
	require.NoError(t, err)
	require.Len(t, result.Options, 1)
	assert.Equal(t, "染色燈", result.Options[0].Name)
	assert.Equal(t, 8.0, result.Options[0].Quantity)
}

func TestValidateCatalogFile_RowErrors(t *testing.T) {
	csv := "category,name,quantity,price\n" +
		"audio,喇叭,2,800\n" +
		"karaoke,,abc,-5\n" +
		"stage,,1,100\n"

	result, err := ValidateCatalogFile(strings.NewReader(csv), "catalog.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.ValidRows)
	assert.Equal(t, 2, result.ErrorRows)
	require.Len(t, result.Options, 1)

	fields := map[string]int{}
	for _, e := range result.Errors {
		if e.Row == 3 {
			fields[e.Field]++
		}
	}
	assert.Equal(t, map[string]int{"category": 1, "name": 1, "quantity": 1, "price": 1}, fields)

	last := result.Errors[len(result.Errors)-1]
	assert.Equal(t, 4, last.Row)
	assert.Equal(t, "name", last.Field)
}

func TestValidateCatalogFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"category", "name", "quantity", "unit", "price", "note", "sub_items"},
		{"led", "LED 電視 65吋", 2, "台", 6000, "", "HDMI 訊號線"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	f.Close()

	result, err := ValidateCatalogFile(bytesReader(buf.Bytes()), "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, result.Options, 1)
	assert.Equal(t, CategoryLED, result.Options[0].Category)
	assert.Equal(t, 6000.0, result.Options[0].Price)
	assert.Equal(t, []string{"HDMI 訊號線"}, result.Options[0].SubItems)
}

func TestValidateCatalogFile_BadInput(t *testing.T) {
	_, err := ValidateCatalogFile(strings.NewReader("a,b"), "catalog.txt")
	assert.Error(t, err)

	_, err = ValidateCatalogFile(strings.NewReader("category,name\n"), "catalog.csv")
	assert.Error(t, err)

	_, err = ValidateCatalogFile(strings.NewReader("not a zip"), "catalog.xlsx")
	assert.Error(t, err)
}

func TestGenerateErrorReport(t *testing.T) {
	errs := []ValidationError{
		{Row: 3, Field: "name", Message: "name is required"},
		{Row: 5, Field: "price", Message: "=1+1"},
	}
	data, err := GenerateErrorReport(errs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytesReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Errors", f.GetSheetName(0))
	v, err := f.GetCellValue("Errors", "B2")
	require.NoError(t, err)
	assert.Equal(t, "name", v)
	v, err = f.GetCellValue("Errors", "C3")
	require.NoError(t, err)
	assert.Equal(t, "'=1+1", v)
}
