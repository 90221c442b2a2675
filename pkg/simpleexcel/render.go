package simpleexcel

import (
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	defaultTitleStyle = &StyleTemplate{
		Font:      &FontTemplate{Bold: true},
		Alignment: &AlignmentTemplate{Horizontal: "center", Vertical: "top"},
	}
	defaultHeaderStyle = &StyleTemplate{
		Font:      &FontTemplate{Bold: true},
		Fill:      &FillTemplate{Color: "DDEBF7"},
		Alignment: &AlignmentTemplate{Horizontal: "center", Vertical: "top"},
	}
)

// renderSheet stacks the sections of sb top to bottom with one blank row between them.
func (e *DataExporter) renderSheet(f *excelize.File, sb *SheetBuilder) error {
	sheet := sb.name
	row := 1

	for i, sec := range sb.sections {
		e.bind(sec)
		cols := resolveColumns(sec)
		if i > 0 {
			row++
		}

		span := len(cols)
		if span < 1 {
			span = 1
		}

		if sec.Title != "" {
			styleID, err := createStyle(f, mergeStyle(sec.TitleStyle, defaultTitleStyle))
			if err != nil {
				return err
			}
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(span, row)
			if err := f.SetCellValue(sheet, first, sec.Title); err != nil {
				return err
			}
			if span > 1 {
				if err := f.MergeCell(sheet, first, last); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, first, last, styleID); err != nil {
				return err
			}
			row++
		}
		if sectionType(sec) == SectionTypeTitleOnly {
			continue
		}

		headerRow := row
		if sec.ShowHeader {
			styleID, err := createStyle(f, mergeStyle(sec.HeaderStyle, defaultHeaderStyle))
			if err != nil {
				return err
			}
			for j, col := range cols {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
			}
			row++
		}

		dataStyleID := 0
		if sec.DataStyle != nil {
			id, err := createStyle(f, sec.DataStyle)
			if err != nil {
				return err
			}
			dataStyleID = id
		}

		rows := rowsOf(sec.Data)
		for _, item := range rows {
			for j, col := range cols {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				if err := f.SetCellValue(sheet, cell, e.cellValue(item, col)); err != nil {
					return err
				}
				if dataStyleID != 0 {
					if err := f.SetCellStyle(sheet, cell, cell, dataStyleID); err != nil {
						return err
					}
				}
			}
			row++
		}

		for j, col := range cols {
			width := col.Width
			if width <= 0 {
				width = defaultColumnWidth
			}
			name, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetColWidth(sheet, name, name, width); err != nil {
				return err
			}
		}

		if sec.HasFilter && sec.ShowHeader && len(cols) > 0 {
			first, _ := excelize.CoordinatesToCellName(1, headerRow)
			last, _ := excelize.CoordinatesToCellName(len(cols), max(row-1, headerRow))
			if err := f.AutoFilter(sheet, first+":"+last, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeStyle fills the unset parts of base from def.
func mergeStyle(base, def *StyleTemplate) *StyleTemplate {
	if base == nil {
		return def
	}
	s := *base
	if s.Font == nil {
		s.Font = def.Font
	}
	if s.Fill == nil {
		s.Fill = def.Fill
	}
	if s.Alignment == nil {
		s.Alignment = def.Alignment
	}
	return &s
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Alignment != nil {
		style.Alignment = &excelize.Alignment{
			Horizontal: tmpl.Alignment.Horizontal,
			Vertical:   tmpl.Alignment.Vertical,
		}
	}
	if tmpl.NumFmt != "" {
		style.CustomNumFmt = &tmpl.NumFmt
	}
	return f.NewStyle(style)
}

// resolveColumns returns the configured columns, or one column per exported field of the first row.
func resolveColumns(sec *SectionConfig) []ColumnConfig {
	if len(sec.Columns) > 0 {
		cols := make([]ColumnConfig, len(sec.Columns))
		copy(cols, sec.Columns)
		for i := range cols {
			if cols[i].Header == "" {
				cols[i].Header = cols[i].FieldName
			}
		}
		return cols
	}

	rows := rowsOf(sec.Data)
	if len(rows) == 0 {
		return nil
	}
	first := indirect(rows[0])
	if first.Kind() != reflect.Struct {
		return nil
	}
	var cols []ColumnConfig
	t := first.Type()
	for i := 0; i < t.NumField(); i++ {
		if field := t.Field(i); field.PkgPath == "" {
			cols = append(cols, ColumnConfig{FieldName: field.Name, Header: field.Name})
		}
	}
	return cols
}

// rowsOf returns the elements of a slice or array, or nil for anything else.
func rowsOf(data interface{}) []reflect.Value {
	if data == nil {
		return nil
	}
	v := indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	rows := make([]reflect.Value, v.Len())
	for i := range rows {
		rows[i] = v.Index(i)
	}
	return rows
}

// extractValue walks a dotted path through structs and string-keyed maps.
func extractValue(item reflect.Value, path string) interface{} {
	cur := item
	for _, part := range strings.Split(path, ".") {
		cur = indirect(cur)
		switch cur.Kind() {
		case reflect.Struct:
			cur = cur.FieldByName(part)
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return ""
			}
			cur = cur.MapIndex(reflect.ValueOf(part).Convert(cur.Type().Key()))
		default:
			return ""
		}
		if !cur.IsValid() {
			return ""
		}
	}
	cur = indirect(cur)
	if !cur.IsValid() || !cur.CanInterface() {
		return ""
	}
	return cur.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
