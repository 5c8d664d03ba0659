package schema

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/contentvet/contentvet/internal/types"
)

// Field length and cardinality limits.
const (
	MinNameLength        = 3
	MaxNameLength        = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 500
	MaxArrayFieldItems   = 20
)

// uniqueIDPattern enforces the canonical identifier convention:
// {type}_{name}_{author}_{timestamp}, all lowercase.
var uniqueIDPattern = regexp.MustCompile(`^[a-z]+_[a-z0-9-]+_[a-z0-9-]+_[0-9]{8,14}$`)

// versionPattern accepts semantic-style version strings (1.0, 1.2.3).
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+(?:\.[0-9]+)?$`)

// knownCategories is the category enum shared by categorized content types.
var knownCategories = map[string]bool{
	"creative":     true,
	"professional": true,
	"educational":  true,
	"personal":     true,
	"gaming":       true,
}

// Schema describes the metadata requirements for one content type.
type Schema struct {
	Type types.ContentType
	// RequiredFields beyond the base set (name, description, unique_id,
	// author) that every type requires.
	RequiredFields []string
	// ArrayFields lists fields expected to be YAML sequences, with per-field
	// cardinality caps.
	ArrayFields map[string]int
	// HasCategory enables category enum validation for the type.
	HasCategory bool
}

// baseRequired is required for every content type.
var baseRequired = []string{"name", "description", "unique_id", "author"}

// schemas registers the per-type requirements.
var schemas = map[types.ContentType]Schema{
	types.TypePersona: {
		Type:        types.TypePersona,
		HasCategory: true,
	},
	types.TypeSkill: {
		Type:        types.TypeSkill,
		ArrayFields: map[string]int{"triggers": MaxArrayFieldItems},
		HasCategory: true,
	},
	types.TypeAgent: {
		Type:           types.TypeAgent,
		RequiredFields: []string{"capabilities"},
		ArrayFields:    map[string]int{"capabilities": MaxArrayFieldItems},
	},
	types.TypeTemplate: {
		Type:           types.TypeTemplate,
		RequiredFields: []string{"format"},
	},
	types.TypeTool: {
		Type:           types.TypeTool,
		RequiredFields: []string{"mcp_version"},
	},
	types.TypeEnsemble: {
		Type:           types.TypeEnsemble,
		RequiredFields: []string{"components"},
		ArrayFields:    map[string]int{"components": 10},
	},
	types.TypePrompt: {
		Type:        types.TypePrompt,
		HasCategory: true,
	},
}

// SchemaFor returns the schema for a content type.
func SchemaFor(t types.ContentType) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}

// ValidateFrontmatter checks parsed frontmatter against the schema for its
// declared type. Severity tracks field criticality: a missing required field
// or malformed unique_id is high, format nits are medium or low.
func ValidateFrontmatter(fm map[string]any) []types.Issue {
	var issues []types.Issue

	declared, _ := fm["type"].(string)
	if declared == "" {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "missing_field",
			Severity:   types.SeverityHigh,
			Details:    "required field 'type' is missing",
			Suggestion: "declare a content type (persona, skill, agent, template, tool, ensemble, prompt)",
		})
		return issues
	}

	contentType := types.ContentType(declared)
	sch, ok := schemas[contentType]
	if !ok {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityHigh,
			Details:    fmt.Sprintf("unknown content type %q", declared),
			Suggestion: "use one of the registered content types",
		})
		return issues
	}

	for _, field := range baseRequired {
		if !hasField(fm, field) {
			issues = append(issues, missingField(field))
		}
	}
	for _, field := range sch.RequiredFields {
		if !hasField(fm, field) {
			issues = append(issues, missingField(field))
		}
	}

	issues = append(issues, validateName(fm)...)
	issues = append(issues, validateDescription(fm)...)
	issues = append(issues, validateUniqueID(fm, contentType)...)
	issues = append(issues, validateVersion(fm)...)
	if sch.HasCategory {
		issues = append(issues, validateCategory(fm)...)
	}
	issues = append(issues, validateArrayFields(fm, sch)...)

	return issues
}

func hasField(fm map[string]any, field string) bool {
	v, ok := fm[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func missingField(field string) types.Issue {
	return types.Issue{
		Source:     types.SourceSchema,
		Type:       "missing_field",
		Severity:   types.SeverityHigh,
		Details:    fmt.Sprintf("required field %q is missing", field),
		Suggestion: fmt.Sprintf("add %q to the frontmatter", field),
	}
}

func validateName(fm map[string]any) []types.Issue {
	name, ok := fm["name"].(string)
	if !ok || name == "" {
		return nil // missing-field check already covers this
	}
	var issues []types.Issue
	if len(name) < MinNameLength {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityMedium,
			Details:    fmt.Sprintf("name %q is shorter than %d characters", name, MinNameLength),
			Suggestion: "use a descriptive name of at least 3 characters",
		})
	}
	if len(name) > MaxNameLength {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityMedium,
			Details:    fmt.Sprintf("name exceeds %d characters", MaxNameLength),
			Suggestion: "shorten the name",
		})
	}
	return issues
}

func validateDescription(fm map[string]any) []types.Issue {
	desc, ok := fm["description"].(string)
	if !ok || desc == "" {
		return nil
	}
	var issues []types.Issue
	if len(desc) < MinDescriptionLength {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityMedium,
			Details:    fmt.Sprintf("description is shorter than %d characters", MinDescriptionLength),
			Suggestion: "describe what the content does in at least one sentence",
		})
	}
	if len(desc) > MaxDescriptionLength {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityLow,
			Details:    fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength),
			Suggestion: "move detail into the body and keep the description short",
		})
	}
	return issues
}

func validateUniqueID(fm map[string]any, contentType types.ContentType) []types.Issue {
	id, ok := fm["unique_id"].(string)
	if !ok || id == "" {
		return nil
	}
	if id != strings.ToLower(id) {
		return []types.Issue{{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityHigh,
			Details:    "unique_id must be lowercase",
			Suggestion: "lowercase the unique_id",
		}}
	}
	if !uniqueIDPattern.MatchString(id) || !strings.HasPrefix(id, string(contentType)+"_") {
		return []types.Issue{{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityHigh,
			Details:    fmt.Sprintf("unique_id %q does not match {type}_{name}_{author}_{timestamp}", id),
			Suggestion: fmt.Sprintf("format the unique_id as %s_<name>_<author>_<timestamp>", contentType),
		}}
	}
	return nil
}

func validateVersion(fm map[string]any) []types.Issue {
	version := versionString(fm["version"])
	if version == "" {
		return nil
	}
	if !versionPattern.MatchString(version) {
		return []types.Issue{{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityLow,
			Details:    fmt.Sprintf("version %q is not a valid version string", version),
			Suggestion: "use MAJOR.MINOR or MAJOR.MINOR.PATCH",
		}}
	}
	return nil
}

// versionString tolerates YAML scalars decoded as non-strings (1.0 decodes
// as a float). Whole floats keep their minor component so 1.0 round-trips as
// "1.0", not "1".
func versionString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return fmt.Sprintf("%.1f", val)
		}
		return fmt.Sprintf("%g", val)
	case int:
		return fmt.Sprintf("%d.0", val)
	default:
		return ""
	}
}

func validateCategory(fm map[string]any) []types.Issue {
	category, ok := fm["category"].(string)
	if !ok || category == "" {
		return nil
	}
	if !knownCategories[category] {
		return []types.Issue{{
			Source:     types.SourceSchema,
			Type:       "invalid_metadata",
			Severity:   types.SeverityMedium,
			Details:    fmt.Sprintf("category %q is not a known category", category),
			Suggestion: "use one of: creative, professional, educational, personal, gaming",
		}}
	}
	return nil
}

func validateArrayFields(fm map[string]any, sch Schema) []types.Issue {
	var issues []types.Issue
	for field, limit := range sch.ArrayFields {
		v, ok := fm[field]
		if !ok || v == nil {
			continue
		}
		items, isArray := v.([]any)
		if !isArray {
			issues = append(issues, types.Issue{
				Source:     types.SourceSchema,
				Type:       "invalid_metadata",
				Severity:   types.SeverityMedium,
				Details:    fmt.Sprintf("field %q must be a list", field),
				Suggestion: fmt.Sprintf("declare %q as a YAML sequence", field),
			})
			continue
		}
		if len(items) > limit {
			issues = append(issues, types.Issue{
				Source:     types.SourceSchema,
				Type:       "invalid_metadata",
				Severity:   types.SeverityMedium,
				Details:    fmt.Sprintf("field %q has %d items, limit is %d", field, len(items), limit),
				Suggestion: fmt.Sprintf("reduce %q to at most %d items", field, limit),
			})
		}
	}
	return issues
}
