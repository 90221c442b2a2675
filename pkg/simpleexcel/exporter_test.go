package simpleexcel

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type team struct {
	Name string
}

type member struct {
	ID     int
	Name   string
	Team   team
	Rating float64
	Tags   map[string]interface{}
}

func sampleMembers() []member {
	return []member{
		{ID: 1, Name: "Alice", Team: team{Name: "Engineering"}, Rating: 4.5, Tags: map[string]interface{}{"level": "senior"}},
		{ID: 2, Name: "Bob", Team: team{Name: "Sales"}, Rating: 3.25},
	}
}

func TestDataExporter_FluentLayout(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Members").
		AddSection(&SectionConfig{
			Title:      "Team Members",
			ShowHeader: true,
			HasFilter:  true,
			Data:       sampleMembers(),
			Columns: []ColumnConfig{
				{FieldName: "ID", Header: "ID", Width: 8},
				{FieldName: "Name", Header: "Name"},
				{FieldName: "Team.Name", Header: "Team"},
				{FieldName: "Tags.level", Header: "Level"},
			},
		}).
		AddSection(&SectionConfig{Title: "Generated report", Type: SectionTypeTitleOnly})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	expect := map[string]string{
		"A1": "Team Members",
		"A2": "ID", "B2": "Name", "C2": "Team", "D2": "Level",
		"A3": "1", "B3": "Alice", "C3": "Engineering", "D3": "senior",
		"A4": "2", "B4": "Bob", "C4": "Sales", "D4": "",
		"A6": "Generated report",
	}
	for cell, want := range expect {
		got, err := f.GetCellValue("Members", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	merged, err := f.GetMergeCells("Members")
	require.NoError(t, err)
	require.NotEmpty(t, merged)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "D1", merged[0].GetEndAxis())
}

func TestDataExporter_YamlTemplateWithFormatter(t *testing.T) {
	yamlConfig := `
sheets:
  - name: "Ratings"
    sections:
      - id: "members"
        title: "Ratings"
        show_header: true
        columns:
          - field_name: "Name"
            header: "Employee"
          - field_name: "Rating"
            header: "Rating"
            formatter: "one_decimal"
`
	exporter, err := NewDataExporterFromYamlConfig(yamlConfig)
	require.NoError(t, err)

	exporter.
		BindSectionData("members", sampleMembers()).
		RegisterFormatter("one_decimal", func(v interface{}) interface{} {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.1f", f)
			}
			return v
		})

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Ratings", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3.2", got)

	name, err := f.GetCellValue("Ratings", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestDataExporter_ToCSV(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Members").
		AddSection(&SectionConfig{
			Title:      "Members",
			ShowHeader: true,
			Data:       sampleMembers(),
			Columns: []ColumnConfig{
				{FieldName: "Name", Header: "Name"},
				{FieldName: "Team.Name", Header: "Team"},
			},
		}).
		AddSection(&SectionConfig{
			ShowHeader: true,
			Data:       []map[string]interface{}{{"Total": 2}},
			Columns:    []ColumnConfig{{FieldName: "Total"}},
		})

	var buf bytes.Buffer
	require.NoError(t, exporter.ToCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Members",
		"Name,Team",
		"Alice,Engineering",
		"Bob,Sales",
		"",
		"Total",
		"2",
	}, lines)
}

func TestDataExporter_DetectsColumnsWhenNoneConfigured(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Auto").AddSection(&SectionConfig{
		ShowHeader: true,
		Data:       []team{{Name: "Support"}},
	})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	header, _ := f.GetCellValue("Auto", "A1")
	value, _ := f.GetCellValue("Auto", "A2")
	assert.Equal(t, "Name", header)
	assert.Equal(t, "Support", value)
}

func TestDataExporter_Errors(t *testing.T) {
	_, err := NewDataExporterFromYamlConfig("   ")
	assert.Error(t, err)

	_, err = NewDataExporterFromYamlConfig("sheets: [")
	assert.Error(t, err)

	_, err = NewDataExporter().BuildExcel()
	assert.Error(t, err)

	assert.Error(t, NewDataExporter().ToCSV(&bytes.Buffer{}))
}
