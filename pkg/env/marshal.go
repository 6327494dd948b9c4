package env

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Vars collects the env-tagged fields of a struct, or a pointer to one, keyed
// by variable name. Untagged struct fields are walked as well. Zero values are
// skipped so envDefault still applies on load.
func Vars(c any) (map[string]string, error) {
	v := reflect.Indirect(reflect.ValueOf(c))
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("env: want a struct, got %s", v.Kind())
	}
	vars := make(map[string]string)
	collect(v, vars)
	return vars, nil
}

func collect(v reflect.Value, vars map[string]string) {
	t := v.Type()
	for i := range t.NumField() {
		field, val := t.Field(i), v.Field(i)
		if !field.IsExported() {
			continue
		}

		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			if val.Kind() == reflect.Struct {
				collect(val, vars)
			}
			continue
		}
		if val.IsZero() {
			continue
		}
		vars[key] = format(val)
	}
}

// format renders a value the way caarlos0/env parses it back.
func format(v reflect.Value) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}
	return fmt.Sprint(v.Interface())
}

// Marshal merges the sets and renders them as .env content, one sorted line
// per variable. Later sets win.
func Marshal(sets ...map[string]string) (string, error) {
	all := make(map[string]string)
	for _, vars := range sets {
		maps.Copy(all, vars)
	}
	if len(all) == 0 {
		return "", nil
	}

	out, err := godotenv.Marshal(all)
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}
