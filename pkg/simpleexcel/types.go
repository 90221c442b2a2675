package simpleexcel

// Section types.
const (
	SectionTypeFull      = "full"  // title, header and data
	SectionTypeTitleOnly = "title" // title row only
)

const defaultColumnWidth = 20

// Formatter converts a cell value before it is written.
type Formatter func(interface{}) interface{}

// ReportTemplate is the YAML layout of a workbook.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate is one sheet of a ReportTemplate.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is a block of rows stacked vertically in a sheet.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Type        string         `yaml:"type"`
	ShowHeader  bool           `yaml:"show_header"`
	HasFilter   bool           `yaml:"has_filter"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	DataStyle   *StyleTemplate `yaml:"data_style"`
	Columns     []ColumnConfig `yaml:"columns"`
	Data        interface{}    `yaml:"-"` // bound at runtime
}

// ColumnConfig maps a field of each data row to a column.
// FieldName may be a dotted path into nested structs or maps, e.g. "Company.Department".
type ColumnConfig struct {
	FieldName     string    `yaml:"field_name"`
	Header        string    `yaml:"header"`
	Width         float64   `yaml:"width"`
	FormatterName string    `yaml:"formatter"`
	Formatter     Formatter `yaml:"-"`
}

// StyleTemplate is the subset of cell styling a template can set.
type StyleTemplate struct {
	Font      *FontTemplate      `yaml:"font"`
	Fill      *FillTemplate      `yaml:"fill"`
	Alignment *AlignmentTemplate `yaml:"alignment"`
	NumFmt    string             `yaml:"num_fmt"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex
}

type AlignmentTemplate struct {
	Horizontal string `yaml:"horizontal"`
	Vertical   string `yaml:"vertical"`
}
