// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"
	"strings"
)

// Kind constrains the argument type accepted for a field.
type Kind int

const (
	// String accepts string arguments. This is the default kind.
	String Kind = iota

	// Int accepts any signed or unsigned Go integer.
	Int

	// Float accepts float32 or float64.
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field declares a placeholder name a template may reference, with the
// argument kind it accepts.
type Field struct {
	Name string
	Kind Kind
}

// Template is a validated pattern with {name} placeholders drawn from
// a fixed set of allowed fields. Construction fails on malformed
// patterns and on placeholders outside the field set, so a Template
// value is known-good by the time it is stored in configuration.
//
// Literal braces are written doubled: "{{" renders as "{".
type Template struct {
	pattern string
	fields  map[string]Kind
	// referenced lists the placeholder names that actually appear in
	// the pattern, in order of first appearance.
	referenced []string
	strict     bool
}

// New parses and validates pattern against the allowed fields. With
// strict set, Format additionally rejects argument keys that are not
// declared fields.
func New(pattern string, fields []Field, strict bool) (*Template, error) {
	allowed := make(map[string]Kind, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("template field with empty name")
		}
		if _, exists := allowed[field.Name]; exists {
			return nil, fmt.Errorf("duplicate template field %q", field.Name)
		}
		allowed[field.Name] = field.Kind
	}

	template := &Template{pattern: pattern, fields: allowed, strict: strict}
	seen := make(map[string]bool)
	err := walkPattern(pattern, func(name string) error {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("template references unsupported variable %q", name)
		}
		if !seen[name] {
			seen[name] = true
			template.referenced = append(template.referenced, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// Pattern returns the original pattern string.
func (t *Template) Pattern() string { return t.pattern }

// Fields returns the placeholder names referenced by the pattern, in
// order of first appearance.
func (t *Template) Fields() []string {
	out := make([]string, len(t.referenced))
	copy(out, t.referenced)
	return out
}

func (t *Template) String() string { return t.pattern }

// Format substitutes args into the template. Every placeholder
// referenced by the pattern must be present in args, and each value
// must match its field's declared kind. In strict mode, args may not
// contain keys outside the declared field set.
func (t *Template) Format(args map[string]any) (string, error) {
	if t.strict {
		for key := range args {
			if _, ok := t.fields[key]; !ok {
				return "", fmt.Errorf("unexpected argument %q", key)
			}
		}
	}

	var builder strings.Builder
	err := renderPattern(t.pattern, &builder, func(name string) (string, error) {
		value, ok := args[name]
		if !ok {
			return "", fmt.Errorf("missing argument %q", name)
		}
		return t.formatValue(name, value)
	})
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}

// formatValue type-checks value against the field's kind and renders
// it.
func (t *Template) formatValue(name string, value any) (string, error) {
	kind := t.fields[name]
	switch kind {
	case String:
		s, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("invalid type for %q: expected string but got %v (%T)", name, value, value)
		}
		return s, nil
	case Int:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return fmt.Sprintf("%d", v), nil
		default:
			return "", fmt.Errorf("invalid type for %q: expected int but got %v (%T)", name, value, value)
		}
	case Float:
		switch v := value.(type) {
		case float32, float64:
			return fmt.Sprintf("%v", v), nil
		default:
			return "", fmt.Errorf("invalid type for %q: expected float but got %v (%T)", name, value, value)
		}
	default:
		return "", fmt.Errorf("field %q has unknown kind %v", name, kind)
	}
}

// walkPattern validates brace structure and calls visit for each
// placeholder name.
func walkPattern(pattern string, visit func(name string) error) error {
	return renderPattern(pattern, nil, func(name string) (string, error) {
		return "", visit(name)
	})
}

// renderPattern scans pattern, writing literal text and substituted
// placeholders to builder (which may be nil for validation-only
// walks). substitute maps a placeholder name to its rendered value.
func renderPattern(pattern string, builder *strings.Builder, substitute func(name string) (string, error)) error {
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				if builder != nil {
					builder.WriteByte('{')
				}
				i++
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			name := pattern[i+1 : i+1+end]
			if name == "" {
				return fmt.Errorf("empty placeholder at offset %d", i)
			}
			if strings.ContainsAny(name, "{ \t\n") {
				return fmt.Errorf("malformed placeholder %q at offset %d", name, i)
			}
			value, err := substitute(name)
			if err != nil {
				return err
			}
			if builder != nil {
				builder.WriteString(value)
			}
			i += end + 1
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				if builder != nil {
					builder.WriteByte('}')
				}
				i++
				continue
			}
			return fmt.Errorf("unmatched '}' at offset %d", i)
		default:
			if builder != nil {
				builder.WriteByte(c)
			}
		}
	}
	return nil
}
