// Package validate checks struct fields against rules declared in the
// `validate` tag, comma-separated:
//
//	required   non-zero value
//	nullable   empty value skips the remaining rules
//	email      well-formed email address
//	numeric    parses as a number
//	integer    parses as a whole number
//	boolean    bool kind or "true"/"false"/"1"/"0"
//	date       parses with one of the supported layouts
//	min=N      minimum length (strings) or value (numbers)
//	max=N      maximum length (strings) or value (numbers)
//	gte=N      number >= N
//	lte=N      number <= N
//	in=a,b,c   value is one of the listed options
//
// Error messages follow the "The <field> ..." phrasing the API returns to
// clients, keyed by the field's json name.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// check evaluates one rule against a field. A non-empty return is the
// client-facing error message.
type check func(field, param string, v reflect.Value) string

var checks = map[string]check{
	"required": func(field, _ string, v reflect.Value) string {
		if isZero(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"email": func(field, _ string, v reflect.Value) string {
		if !emailPattern.MatchString(text(v)) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
		return ""
	},
	"numeric": func(field, _ string, v reflect.Value) string {
		if _, err := strconv.ParseFloat(text(v), 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		return ""
	},
	"integer": func(field, _ string, v reflect.Value) string {
		if _, err := strconv.ParseInt(text(v), 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
		return ""
	},
	"boolean": func(field, _ string, v reflect.Value) string {
		if v.Kind() == reflect.Bool {
			return ""
		}
		switch strings.ToLower(text(v)) {
		case "true", "false", "1", "0":
			return ""
		}
		return fmt.Sprintf("The %s field must be true or false.", field)
	},
	"date": func(field, _ string, v reflect.Value) string {
		if _, err := ParseDate(text(v)); err != nil {
			return fmt.Sprintf("The %s is not a valid date.", field)
		}
		return ""
	},
	"min": func(field, param string, v reflect.Value) string {
		bound := paramFloat(param)
		if isNumber(v) {
			if numberOf(v) < bound {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(text(v)))) < bound {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return ""
	},
	"max": func(field, param string, v reflect.Value) string {
		bound := paramFloat(param)
		if isNumber(v) {
			if numberOf(v) > bound {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(text(v)))) > bound {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
		return ""
	},
	"gte": func(field, param string, v reflect.Value) string {
		if numberOf(v) < paramFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
		return ""
	},
	"lte": func(field, param string, v reflect.Value) string {
		if numberOf(v) > paramFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
		return ""
	},
	"in": func(field, param string, v reflect.Value) string {
		raw := text(v)
		for _, option := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(option) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
}

// Struct validates every tagged field of v. The result maps json field
// names to messages; an empty map means the input passed.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}
		field := fieldLabel(rt.Field(i))
		if msg := run(splitRules(tag), field, rv.Field(i)); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// run applies the field's rules in order and returns the first failure.
func run(rules []string, field string, v reflect.Value) string {
	for _, rule := range rules {
		if rule == "nullable" {
			if isZero(v) {
				return ""
			}
			continue
		}
		name, param, _ := strings.Cut(rule, "=")
		c, ok := checks[name]
		if !ok {
			continue
		}
		target := v
		if target.Kind() == reflect.Ptr && !target.IsNil() {
			target = target.Elem()
		}
		if msg := c(field, param, target); msg != "" {
			return msg
		}
	}
	return ""
}

// HasErrors reports whether the error map contains any entries.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var dateLayouts = []string{
	time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "02/01/2006",
}

// ParseDate tries each supported layout in order.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", s)
}

func text(v reflect.Value) string { return fmt.Sprintf("%v", v.Interface()) }

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a legitimate boolean value
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func numberOf(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(text(v), 64)
	return f
}

func paramFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// fieldLabel picks the json name for messages, falling back to the
// lowercased Go name.
func fieldLabel(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if i := strings.Index(name, ","); i != -1 {
		name = name[:i]
	}
	return name
}

// splitRules splits the tag on commas while keeping the option list of an
// in= rule together: "required,in=Rent,Buy,max=100" stays three rules.
func splitRules(tag string) []string {
	var rules []string
	var cur strings.Builder
	inOptions := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch != ',' {
			cur.WriteByte(ch)
			if !inOptions && strings.HasSuffix(cur.String(), "in=") {
				inOptions = true
			}
			continue
		}
		if inOptions && !startsNewRule(tag[i+1:]) {
			cur.WriteByte(ch)
			continue
		}
		rules = append(rules, cur.String())
		cur.Reset()
		inOptions = false
	}
	if cur.Len() > 0 {
		rules = append(rules, cur.String())
	}
	return rules
}

func startsNewRule(s string) bool {
	for name := range checks {
		if strings.HasPrefix(s, name+"=") || s == name || strings.HasPrefix(s, name+",") {
			return true
		}
	}
	return strings.HasPrefix(s, "nullable")
}
