package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}

	if c.Slice.OutcomeType == "" {
		errors = append(errors, ValidationError{
			Field:   "slice.outcome_type",
			Message: "outcome_type is required",
		})
	}

	errors = append(errors, c.validateBreeds()...)
	errors = append(errors, c.validateSpecies()...)
	errors = append(errors, c.validateStyle()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	switch c.Source.Type {
	case "csv":
		if c.Source.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "source.path",
				Message: "path is required for csv sources",
			})
		}
	case "mysql":
		errors = append(errors, c.validateTable()...)
		errors = append(errors, validateDatabase("source.mysql", &c.Source.MySQL)...)
	case "postgres":
		errors = append(errors, c.validateTable()...)
		if c.Source.Postgres.URL == "" {
			errors = append(errors, ValidationError{
				Field:   "source.postgres.url",
				Message: "url is required for postgres sources",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "source.type",
			Message: "type must be 'csv', 'mysql', or 'postgres'",
		})
	}

	return errors
}

func (c *Config) validateTable() ValidationErrors {
	if c.Source.Table == "" {
		return ValidationErrors{{
			Field:   "source.table",
			Message: "table is required for database sources",
		}}
	}
	return nil
}

func validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateBreeds() ValidationErrors {
	var errors ValidationErrors
	b := c.Breeds

	if b.Species == "" {
		errors = append(errors, ValidationError{
			Field:   "breeds.species",
			Message: "species is required",
		})
	}

	if b.TopN < 0 {
		errors = append(errors, ValidationError{
			Field:   "breeds.top_n",
			Message: "top_n cannot be negative",
		})
	}

	if b.Quantile < 0 || b.Quantile > 1 {
		errors = append(errors, ValidationError{
			Field:   "breeds.quantile",
			Message: "quantile must be between 0 and 1",
		})
	}

	if b.TieBreak != "" && b.TieBreak != "name" && b.TieBreak != "first_seen" {
		errors = append(errors, ValidationError{
			Field:   "breeds.tie_break",
			Message: "tie_break must be 'name' or 'first_seen'",
		})
	}

	return errors
}

func (c *Config) validateSpecies() ValidationErrors {
	var errors ValidationErrors
	s := c.Species

	if len(s.Cohorts) == 0 {
		errors = append(errors, ValidationError{
			Field:   "species.cohorts",
			Message: "at least one cohort must be defined",
		})
	}

	for i, cohort := range s.Cohorts {
		prefix := fmt.Sprintf("species.cohorts[%d]", i)
		if cohort.Label == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".label",
				Message: "label is required",
			})
		}
		if cohort.Species == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".species",
				Message: "species is required",
			})
		}
		if !isHexColor(cohort.Color) {
			errors = append(errors, ValidationError{
				Field:   prefix + ".color",
				Message: "color must be a hex value like #1f77b4",
			})
		}
		// Also catches NaN. A missing factor decodes as 0.
		if !(cohort.LabelXFactor > 0) {
			errors = append(errors, ValidationError{
				Field:   prefix + ".label_x_factor",
				Message: "label_x_factor must be greater than 0",
			})
		}
		if !(cohort.LabelYFactor > 0) {
			errors = append(errors, ValidationError{
				Field:   prefix + ".label_y_factor",
				Message: "label_y_factor must be greater than 0",
			})
		}
	}

	if s.FillAlpha < 0 || s.FillAlpha > 1 {
		errors = append(errors, ValidationError{
			Field:   "species.fill_alpha",
			Message: "fill_alpha must be between 0 and 1",
		})
	}

	if s.LineWidth < 0 {
		errors = append(errors, ValidationError{
			Field:   "species.line_width",
			Message: "line_width cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateStyle() ValidationErrors {
	var errors ValidationErrors

	if c.Style.WidthInches <= 0 || c.Style.HeightInches <= 0 {
		errors = append(errors, ValidationError{
			Field:   "style",
			Message: "width_inches and height_inches must be positive",
		})
	}

	if c.Style.DPI <= 0 {
		errors = append(errors, ValidationError{
			Field:   "style.dpi",
			Message: "dpi must be positive",
		})
	}

	if c.Style.Background != "" && !isHexColor(c.Style.Background) {
		errors = append(errors, ValidationError{
			Field:   "style.background",
			Message: "background must be a hex value like #ffffff",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
