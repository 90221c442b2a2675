package simpleexcel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// DataExporter renders bound data into an xlsx workbook or CSV.
type DataExporter struct {
	sheets     []*SheetBuilder
	data       map[string]interface{}
	formatters map[string]Formatter
}

// NewDataExporter creates an empty exporter for the fluent API.
func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:       make(map[string]interface{}),
		formatters: make(map[string]Formatter),
	}
}

// NewDataExporterFromYamlConfig creates an exporter whose sheets come from a YAML template.
func NewDataExporterFromYamlConfig(yamlConfig string) (*DataExporter, error) {
	if strings.TrimSpace(yamlConfig) == "" {
		return nil, fmt.Errorf("yaml config is empty")
	}
	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(yamlConfig), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	e := NewDataExporter()
	for i := range tmpl.Sheets {
		sb := e.AddSheet(tmpl.Sheets[i].Name)
		for j := range tmpl.Sheets[i].Sections {
			sb.AddSection(&tmpl.Sheets[i].Sections[j])
		}
	}
	return e, nil
}

// AddSheet appends a sheet and returns its builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{exporter: e, name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds a slice to the section with the given ID.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes f available to columns by name.
func (e *DataExporter) RegisterFormatter(name string, f Formatter) *DataExporter {
	e.formatters[name] = f
	return e
}

// BuildExcel renders every sheet into a new workbook.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	for i, sb := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sb.name); err != nil {
			return nil, err
		}

		if err := e.renderSheet(f, sb); err != nil {
			f.Close()
			return nil, fmt.Errorf("render sheet %s: %w", sb.name, err)
		}
	}
	return f, nil
}

// ToBytes renders the workbook into memory.
func (e *DataExporter) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToWriter(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter renders the workbook into w.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ToCSV writes the sections of the first sheet to w, separated by an empty line.
func (e *DataExporter) ToCSV(w io.Writer) error {
	if len(e.sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	cw := csv.NewWriter(w)
	for i, sec := range e.sheets[0].sections {
		e.bind(sec)
		cols := resolveColumns(sec)
		rows := rowsOf(sec.Data)

		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if sec.Title != "" {
			if err := cw.Write([]string{sec.Title}); err != nil {
				return err
			}
		}
		if sectionType(sec) == SectionTypeTitleOnly {
			continue
		}
		if sec.ShowHeader {
			header := make([]string, len(cols))
			for j, col := range cols {
				header[j] = col.Header
			}
			if err := cw.Write(header); err != nil {
				return err
			}
		}
		for _, row := range rows {
			record := make([]string, len(cols))
			for j, col := range cols {
				record[j] = fmt.Sprintf("%v", e.cellValue(row, col))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SheetBuilder collects the sections of one sheet.
type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

func (e *DataExporter) bind(sec *SectionConfig) {
	if sec.ID == "" {
		return
	}
	if data, ok := e.data[sec.ID]; ok {
		sec.Data = data
	}
}

func (e *DataExporter) cellValue(row reflect.Value, col ColumnConfig) interface{} {
	val := extractValue(row, col.FieldName)
	if col.Formatter != nil {
		return col.Formatter(val)
	}
	if col.FormatterName != "" {
		if fn, ok := e.formatters[col.FormatterName]; ok {
			return fn(val)
		}
	}
	return val
}

func sectionType(sec *SectionConfig) string {
	if sec.Type == "" {
		return SectionTypeFull
	}
	return sec.Type
}
