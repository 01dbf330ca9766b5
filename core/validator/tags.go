package validator

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Rule is the outcome of applying one validator to one field.
type Rule struct {
	Check   func() bool
	Message string
}

// ValidatorFunc builds the rule for a field value and the tag parameters.
type ValidatorFunc func(value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"email":    emailValidator,
		"regex":    regexValidator,
	}

	regexCache sync.Map
)

// RegisterValidator adds or replaces a named rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates the exported fields of the struct v points to.
// It returns ValidationErrors when any rule fails.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	var errs ValidationErrors
	validateStruct(rv.Elem(), "", &errs)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := fieldName(sf)
		if prefix != "" {
			path = prefix + "." + path
		}

		field := rv.Field(i)
		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct && tag == "" {
			validateStruct(field, path, errs)
			continue
		}
		if tag == "" {
			continue
		}

		validateField(path, field, tag, errs)
	}
}

func fieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, raw := range strings.Split(tag, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = []string{paramStr}
			if name != "regex" {
				params = strings.Split(paramStr, ",")
				for i := range params {
					params[i] = strings.TrimSpace(params[i])
				}
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}
		if rule := fn(field, params); !rule.Check() {
			errs.Add(ValidationError{Field: path, Rule: name, Message: rule.Message})
			if name == "required" {
				return
			}
		}
	}
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredValidator(value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if !value.IsValid() {
				return false
			}
			if value.Kind() == reflect.String {
				return strings.TrimSpace(value.String()) != ""
			}
			return !value.IsZero()
		},
		Message: "is required",
	}
}

func length(value reflect.Value) (int, bool) {
	switch value.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(value.String()), true
	case reflect.Slice, reflect.Map, reflect.Array:
		return value.Len(), true
	default:
		return 0, false
	}
}

func minValidator(value reflect.Value, params []string) Rule {
	if len(params) == 0 {
		return pass()
	}
	n, err := strconv.Atoi(params[0])
	l, ok := length(value)
	if err != nil || !ok {
		return pass()
	}
	return Rule{
		Check:   func() bool { return l >= n },
		Message: fmt.Sprintf("must be at least %d characters", n),
	}
}

func maxValidator(value reflect.Value, params []string) Rule {
	if len(params) == 0 {
		return pass()
	}
	n, err := strconv.Atoi(params[0])
	l, ok := length(value)
	if err != nil || !ok {
		return pass()
	}
	return Rule{
		Check:   func() bool { return l <= n },
		Message: fmt.Sprintf("must be at most %d characters", n),
	}
}

func emailValidator(value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	s := value.String()
	return Rule{
		Check: func() bool {
			if s == "" {
				return true
			}
			addr, err := mail.ParseAddress(s)
			return err == nil && addr.Address == s
		},
		Message: "must be a valid email address",
	}
}

// regexValidator takes the whole parameter as the expression, commas included.
func regexValidator(value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) == 0 {
		return pass()
	}
	re, err := compile(params[0])
	if err != nil {
		return pass()
	}
	s := value.String()
	return Rule{
		Check:   func() bool { return s == "" || re.MatchString(s) },
		Message: "has an invalid format",
	}
}

func compile(expr string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	regexCache.Store(expr, re)
	return re, nil
}
