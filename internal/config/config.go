// Package config provides configuration structures and loading for shelterstats.
package config

// Config represents the complete application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Slice   SliceConfig   `yaml:"slice" mapstructure:"slice"`
	Breeds  BreedsConfig  `yaml:"breeds" mapstructure:"breeds"`
	Species SpeciesConfig `yaml:"species" mapstructure:"species"`
	Style   StyleConfig   `yaml:"style" mapstructure:"style"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig selects where observations are loaded from.
type SourceConfig struct {
	Type     string         `yaml:"type" mapstructure:"type"`   // csv, mysql or postgres
	Path     string         `yaml:"path" mapstructure:"path"`   // csv file path
	Table    string         `yaml:"table" mapstructure:"table"` // mysql/postgres table
	MySQL    DatabaseConfig `yaml:"mysql" mapstructure:"mysql"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// PostgresConfig represents a PostgreSQL connection.
type PostgresConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// OutputConfig controls where images are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // must already exist
}

// SliceConfig is the year and outcome every report filters on.
type SliceConfig struct {
	Year        int    `yaml:"year" mapstructure:"year"`
	OutcomeType string `yaml:"outcome_type" mapstructure:"outcome_type"`
}

// BreedsConfig configures the breed box plot.
type BreedsConfig struct {
	FileName    string  `yaml:"file_name" mapstructure:"file_name"`
	Species     string  `yaml:"species" mapstructure:"species"`
	TopN        int     `yaml:"top_n" mapstructure:"top_n"`
	Quantile    float64 `yaml:"quantile" mapstructure:"quantile"`
	TieBreak    string  `yaml:"tie_break" mapstructure:"tie_break"` // name or first_seen
	LabelOffset float64 `yaml:"label_offset" mapstructure:"label_offset"`
	Title       string  `yaml:"title" mapstructure:"title"`
	XLabel      string  `yaml:"x_label" mapstructure:"x_label"`
	YLabel      string  `yaml:"y_label" mapstructure:"y_label"`
}

// SpeciesConfig configures the cohort density plot.
type SpeciesConfig struct {
	FileName   string         `yaml:"file_name" mapstructure:"file_name"`
	Cohorts    []CohortConfig `yaml:"cohorts" mapstructure:"cohorts"`
	GridPoints int            `yaml:"grid_points" mapstructure:"grid_points"`
	LineWidth  float64        `yaml:"line_width" mapstructure:"line_width"` // points
	FillAlpha  float64        `yaml:"fill_alpha" mapstructure:"fill_alpha"`
	Title      string         `yaml:"title" mapstructure:"title"`
	XLabel     string         `yaml:"x_label" mapstructure:"x_label"`
}

// CohortConfig is one species curve of the density plot.
type CohortConfig struct {
	Label        string  `yaml:"label" mapstructure:"label"`
	Species      string  `yaml:"species" mapstructure:"species"`
	Color        string  `yaml:"color" mapstructure:"color"` // #rrggbb
	LabelXFactor float64 `yaml:"label_x_factor" mapstructure:"label_x_factor"`
	LabelYFactor float64 `yaml:"label_y_factor" mapstructure:"label_y_factor"`
}

// StyleConfig overrides the chart theme. Sizes are in points, dimensions in inches.
type StyleConfig struct {
	TitleSize      float64 `yaml:"title_size" mapstructure:"title_size"`
	LabelSize      float64 `yaml:"label_size" mapstructure:"label_size"`
	TickLabelSize  float64 `yaml:"tick_label_size" mapstructure:"tick_label_size"`
	LegendSize     float64 `yaml:"legend_size" mapstructure:"legend_size"`
	AnnotationSize float64 `yaml:"annotation_size" mapstructure:"annotation_size"`
	TickLength     float64 `yaml:"tick_length" mapstructure:"tick_length"`
	BoxWidth       float64 `yaml:"box_width" mapstructure:"box_width"`
	WidthInches    float64 `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches   float64 `yaml:"height_inches" mapstructure:"height_inches"`
	DPI            int     `yaml:"dpi" mapstructure:"dpi"`
	Background     string  `yaml:"background" mapstructure:"background"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:  "csv",
			Path:  "data/animal_outcomes.csv",
			Table: "animal_outcomes",
			MySQL: DatabaseConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     4,
				MaxIdleConnections: 2,
			},
		},
		Output: OutputConfig{
			Dir: "images",
		},
		Slice: SliceConfig{
			Year:        2019,
			OutcomeType: "Adoption",
		},
		Breeds: BreedsConfig{
			FileName:    "breed_days_in_shelter",
			Species:     "Dog",
			TopN:        15,
			Quantile:    0.75,
			TieBreak:    "name",
			LabelOffset: 0.03,
			Title:       "Distribution of days spent in shelter before adoption",
			XLabel:      "Dog breeds",
			YLabel:      "Days spent in shelter",
		},
		Species: SpeciesConfig{
			FileName: "cats_dogs_days_in_shelter",
			Cohorts: []CohortConfig{
				{Label: "Cats", Species: "Cat", Color: "#1f77b4", LabelXFactor: 1.1, LabelYFactor: 0.9},
				{Label: "Dogs", Species: "Dog", Color: "#ff7f0e", LabelXFactor: 0.4, LabelYFactor: 1.0},
			},
			GridPoints: 200,
			LineWidth:  3,
			FillAlpha:  0.3,
			Title:      "Days in shelter before adoption for cats and dogs",
			XLabel:     "Days in shelter before adoption",
		},
		Style: StyleConfig{
			TitleSize:      22,
			LabelSize:      16,
			TickLabelSize:  16,
			LegendSize:     16,
			AnnotationSize: 12,
			TickLength:     16,
			BoxWidth:       40,
			WidthInches:    16,
			HeightInches:   10,
			DPI:            80,
			Background:     "#ffffff",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
