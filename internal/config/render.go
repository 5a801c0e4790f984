package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	lines := []string{"# DragKit configuration (TOML)", ""}
	top, sections, order := splitSections(GetConfigOptions())
	for _, o := range top {
		lines = appendOption(lines, o)
	}
	for _, s := range order {
		lines = append(lines, "["+s+"]")
		for _, o := range sections[s] {
			lines = appendOption(lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML merges missing defaults into an existing TOML document and
// comments out keys that are no longer part of the schema. Missing keys are
// added inside their existing section so no table is declared twice.
func UpdateTOML(existing string) (string, bool) {
	lines := strings.Split(existing, "\n")
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	section := ""
	for _, line := range lines {
		if s, ok := parseTOMLHeader(line); ok {
			section = s
			continue
		}
		if key, ok := parseTOMLKey(line); ok {
			seen[joinKey(section, key)] = true
		}
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	top, pending, order := splitSections(missing)
	if len(top) > 0 {
		pending[""] = top
	}

	changed := false
	out := make([]string, 0, len(lines))
	flush := func(sec string) {
		opts, ok := pending[sec]
		if !ok {
			return
		}
		delete(pending, sec)
		out = append(out, "# Added by config update")
		for _, o := range opts {
			out = appendOption(out, o)
		}
		changed = true
	}

	section = ""
	for _, line := range lines {
		if s, ok := parseTOMLHeader(line); ok {
			flush(section)
			section = s
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if ok && !known[joinKey(section, key)] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}
	flush(section)

	for _, s := range order {
		if _, ok := pending[s]; !ok {
			continue
		}
		out = append(out, "", "["+s+"]")
		flush(s)
	}
	return strings.Join(out, "\n"), changed
}

func parseTOMLHeader(line string) (string, bool) {
	trim := strings.TrimSpace(line)
	if !strings.HasPrefix(trim, "[") || !strings.HasSuffix(trim, "]") {
		return "", false
	}
	return strings.TrimSpace(trim[1 : len(trim)-1]), true
}

func joinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

// splitSections groups dotted keys by their first segment, keeping the
// order in which sections first appear.
func splitSections(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var top []ConfigOption
	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, exists := sections[section]; !exists {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	trim := strings.TrimSpace(line)
	if trim == "" || strings.HasPrefix(trim, "#") {
		return "", false
	}
	key, _, ok := strings.Cut(trim, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key[:1], `["'`) {
		return "", false
	}
	return key, true
}

func appendOption(lines []string, o ConfigOption) []string {
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	switch v := o.Default.(type) {
	case string:
		lines = append(lines, fmt.Sprintf("%s = %q", o.Key, v))
	case bool, int, int64, float64:
		lines = append(lines, fmt.Sprintf("%s = %v", o.Key, v))
	default:
		lines = append(lines, fmt.Sprintf("# %s = %v", o.Key, v))
	}
	return append(lines, "")
}
