package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
)

const redacted = "********"

// Entry is one environment-backed setting as reported by the maintenance CLI.
type Entry struct {
	Env     string `json:"env" yaml:"env"`
	Value   string `json:"value" yaml:"value"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Secret  bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
}

// Entries lists every setting in declaration order. Secrets (fields hidden from JSON) are redacted.
func Entries(cfg *Config) []Entry {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	entries := make([]Entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := envName(field)
		if name == "" {
			continue
		}

		secret := field.Tag.Get("json") == "-"
		value := formatValue(v.Field(i))
		if secret && value != "" {
			value = redacted
		}

		entries = append(entries, Entry{
			Env:     name,
			Value:   value,
			Default: field.Tag.Get("envDefault"),
			Secret:  secret,
		})
	}
	return entries
}

// JSONSchema describes the environment variables the service reads, keyed by variable name.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		FieldNameTag:              "env",
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "Koita Chat API configuration"
	schema.Description = "Environment variables read at startup"

	t := reflect.TypeOf(Config{})
	required := make([]string, 0)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := envName(field)
		if name == "" {
			continue
		}
		if strings.Contains(field.Tag.Get("env"), ",notEmpty") {
			required = append(required, name)
		}
		prop, ok := schema.Properties.Get(name)
		if !ok {
			continue
		}
		if def := field.Tag.Get("envDefault"); def != "" {
			prop.Default = def
		}
		if field.Type.String() == "time.Duration" {
			prop.Type = "string"
			prop.Format = "duration"
		}
	}
	// enforced by Load rather than by an env tag
	if !slices.Contains(required, "JWT_SECRET") {
		required = append(required, "JWT_SECRET")
	}
	schema.Required = required

	return json.MarshalIndent(schema, "", "  ")
}

// formatValue renders slices the way env lists them, comma separated.
func formatValue(v reflect.Value) string {
	if v.Kind() != reflect.Slice {
		return fmt.Sprint(v.Interface())
	}
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return strings.Join(parts, ",")
}

func envName(field reflect.StructField) string {
	tag := field.Tag.Get("env")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

