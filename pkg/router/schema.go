package router

import (
	"encoding/json"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	timeType       = reflect.TypeOf(time.Time{})
	rawMessageType = reflect.TypeOf(json.RawMessage{})
)

// schemaRegistry turns Go types into JSON schemas. Named struct types are
// stored once under components/schemas and referenced by name.
type schemaRegistry struct {
	schemas map[string]map[string]any
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{
		schemas: make(map[string]map[string]any),
	}
}

// all returns a copy of the registered component schemas
func (r *schemaRegistry) all() map[string]any {
	result := make(map[string]any, len(r.schemas))
	for name, schema := range r.schemas {
		result[name] = schema
	}
	return result
}

// ref returns the schema for v's type, a $ref for named structs
func (r *schemaRegistry) ref(v any) map[string]any {
	if v == nil {
		return nil
	}
	return r.schemaFor(reflect.TypeOf(v))
}

func (r *schemaRegistry) schemaFor(typ reflect.Type) map[string]any {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	switch typ {
	case timeType:
		return map[string]any{"type": "string", "format": "date-time"}
	case rawMessageType:
		return map[string]any{"type": "object"}
	}

	if schema := basicTypeSchema(typ.Kind()); schema != nil {
		return schema
	}

	switch typ.Kind() {
	case reflect.Struct:
		name := typ.Name()
		if name == "" {
			return r.structSchema(typ)
		}
		if _, exists := r.schemas[name]; !exists {
			// placeholder first so self references terminate
			r.schemas[name] = map[string]any{"type": "object"}
			r.schemas[name] = r.structSchema(typ)
		}
		return map[string]any{"$ref": "#/components/schemas/" + name}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": r.schemaFor(typ.Elem()),
		}
	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": r.schemaFor(typ.Elem()),
		}
	default:
		return map[string]any{"type": "object"}
	}
}

// structSchema converts a struct type to an object schema
func (r *schemaRegistry) structSchema(typ reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := []string{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, isRequired := parseJSONTag(jsonTag, field.Name)
		if isRequired {
			required = append(required, name)
		}

		fieldSchema := r.schemaFor(field.Type)
		if _, isRef := fieldSchema["$ref"]; !isRef {
			addFieldMetadata(fieldSchema, field)
		}
		properties[name] = fieldSchema
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// parseJSONTag extracts name and required status from a json tag. Fields
// without omitempty are documented as required.
func parseJSONTag(jsonTag, fieldName string) (string, bool) {
	if jsonTag == "" {
		return fieldName, true
	}

	parts := strings.Split(jsonTag, ",")
	name := parts[0]
	if name == "" {
		name = fieldName
	}

	return name, !slices.Contains(parts[1:], "omitempty")
}

// addFieldMetadata adds documentation from doc, example and enum tags
func addFieldMetadata(schema map[string]any, field reflect.StructField) {
	if doc := field.Tag.Get("doc"); doc != "" {
		schema["description"] = doc
	}

	if example := field.Tag.Get("example"); example != "" {
		schema["example"] = typedExample(schema["type"], example)
	}

	if enum := field.Tag.Get("enum"); enum != "" {
		schema["enum"] = strings.Split(enum, ",")
	}
}

// typedExample converts the example tag to the schema's type when it parses
func typedExample(schemaType any, example string) any {
	switch schemaType {
	case "integer":
		if v, err := strconv.ParseInt(example, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(example, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(example); err == nil {
			return v
		}
	}
	return example
}

// basicTypeSchema creates a schema for a basic Go kind
func basicTypeSchema(kind reflect.Kind) map[string]any {
	switch kind {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return map[string]any{"type": "integer"}
	case reflect.Int64, reflect.Uint64:
		return map[string]any{"type": "integer", "format": "int64"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.String:
		return map[string]any{"type": "string"}
	default:
		return nil
	}
}
