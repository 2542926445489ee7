// internal/models/analysis.go
package models

import "fmt"

// PlanningElements groups scheduling and process items pulled out of a
// conversation. Every field is always non-nil so marshaled output keeps the
// full shape even when nothing was extracted.
type PlanningElements struct {
	Schedules  []string `json:"schedules"`
	Checklists []string `json:"checklists"`
	Trackers   []string `json:"trackers"`
	Workflows  []string `json:"workflows"`
}

// UserPreferences captures style and organization wishes mentioned in a
// conversation.
type UserPreferences struct {
	AestheticStyle    []string `json:"aesthetic_style"`
	Colors            []string `json:"colors"`
	OrganizationStyle []string `json:"organization_style"`
	FeaturesRequested []string `json:"features_requested"`
}

// StructureRequirements describes the workspace layout the conversation
// calls for: categories, databases, views and pages.
type StructureRequirements struct {
	MainCategories []string `json:"main_categories"`
	DatabaseTypes  []string `json:"database_types"`
	ViewTypes      []string `json:"view_types"`
	PageTypes      []string `json:"page_types"`
}

// AnalysisResult is the composite output of a full conversation analysis.
// It is always structurally complete: every field and sub-field is present
// with at least an empty slice, no matter how many extraction tasks degraded
// to their fallback.
type AnalysisResult struct {
	Topics           []string              `json:"topics"`
	PlanningElements PlanningElements      `json:"planning_elements"`
	UserPreferences  UserPreferences       `json:"user_preferences"`
	ActionItems      []string              `json:"action_items"`
	Structure        StructureRequirements `json:"structure"`
}

// ==========================
// Fallback values
// ==========================

// FallbackTopics is substituted when the topics extraction fails outright.
// Non-empty because template generation needs at least one topic to proceed.
func FallbackTopics() []string {
	return []string{"General Planning"}
}

// EmptyPlanningElements returns the all-empty planning record. There is no
// safe non-empty default for planning items.
func EmptyPlanningElements() PlanningElements {
	return PlanningElements{
		Schedules:  []string{},
		Checklists: []string{},
		Trackers:   []string{},
		Workflows:  []string{},
	}
}

// EmptyUserPreferences returns the all-empty preferences record.
func EmptyUserPreferences() UserPreferences {
	return UserPreferences{
		AestheticStyle:    []string{},
		Colors:            []string{},
		OrganizationStyle: []string{},
		FeaturesRequested: []string{},
	}
}

// EmptyActionItems returns the empty action item list.
func EmptyActionItems() []string {
	return []string{}
}

// EmptyStructure returns the all-empty structure record, used for
// field-level defaulting of a partially present object.
func EmptyStructure() StructureRequirements {
	return StructureRequirements{
		MainCategories: []string{},
		DatabaseTypes:  []string{},
		ViewTypes:      []string{},
		PageTypes:      []string{},
	}
}

// FallbackStructure is substituted when the structure extraction fails
// outright. Non-empty so the generator always has a workable layout.
func FallbackStructure() StructureRequirements {
	return StructureRequirements{
		MainCategories: []string{"Planning"},
		DatabaseTypes:  []string{"task_tracker"},
		ViewTypes:      []string{"table", "calendar"},
		PageTypes:      []string{"dashboard"},
	}
}

// FallbackAnalysisResult is the fully degraded analysis: every task at its
// own fallback value.
func FallbackAnalysisResult() AnalysisResult {
	return AnalysisResult{
		Topics:           FallbackTopics(),
		PlanningElements: EmptyPlanningElements(),
		UserPreferences:  EmptyUserPreferences(),
		ActionItems:      EmptyActionItems(),
		Structure:        FallbackStructure(),
	}
}

// ==========================
// Defaulting constructors
// ==========================

// StringsFromValue converts a loosely typed parsed JSON value into a string
// slice. Scalar elements that are not strings are formatted; nested arrays
// and objects are skipped. Returns false when the value is not a sequence
// at all.
func StringsFromValue(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch val := item.(type) {
		case string:
			out = append(out, val)
		case float64, bool:
			out = append(out, fmt.Sprintf("%v", val))
		}
	}
	return out, true
}

func stringsField(m map[string]interface{}, key string) []string {
	if v, ok := m[key]; ok {
		if s, ok := StringsFromValue(v); ok {
			return s
		}
	}
	return []string{}
}

// PlanningElementsFromMap builds a PlanningElements record from a parsed
// JSON object, defaulting each missing or mistyped field independently.
func PlanningElementsFromMap(m map[string]interface{}) PlanningElements {
	return PlanningElements{
		Schedules:  stringsField(m, "schedules"),
		Checklists: stringsField(m, "checklists"),
		Trackers:   stringsField(m, "trackers"),
		Workflows:  stringsField(m, "workflows"),
	}
}

// UserPreferencesFromMap builds a UserPreferences record with per-field
// defaulting.
func UserPreferencesFromMap(m map[string]interface{}) UserPreferences {
	return UserPreferences{
		AestheticStyle:    stringsField(m, "aesthetic_style"),
		Colors:            stringsField(m, "colors"),
		OrganizationStyle: stringsField(m, "organization_style"),
		FeaturesRequested: stringsField(m, "features_requested"),
	}
}

// StructureFromMap builds a StructureRequirements record with per-field
// defaulting.
func StructureFromMap(m map[string]interface{}) StructureRequirements {
	return StructureRequirements{
		MainCategories: stringsField(m, "main_categories"),
		DatabaseTypes:  stringsField(m, "database_types"),
		ViewTypes:      stringsField(m, "view_types"),
		PageTypes:      stringsField(m, "page_types"),
	}
}

// AnalysisResultFromMap builds a full AnalysisResult from a parsed composite
// JSON object, applying field-level defaulting recursively. Missing top-level
// keys default to empty, not to the task fallbacks: fallbacks apply only when
// an entire reply failed to parse.
func AnalysisResultFromMap(m map[string]interface{}) AnalysisResult {
	result := AnalysisResult{
		Topics:           stringsField(m, "topics"),
		PlanningElements: EmptyPlanningElements(),
		UserPreferences:  EmptyUserPreferences(),
		ActionItems:      stringsField(m, "action_items"),
		Structure:        EmptyStructure(),
	}

	if sub, ok := m["planning_elements"].(map[string]interface{}); ok {
		result.PlanningElements = PlanningElementsFromMap(sub)
	}
	if sub, ok := m["user_preferences"].(map[string]interface{}); ok {
		result.UserPreferences = UserPreferencesFromMap(sub)
	}
	if sub, ok := m["structure"].(map[string]interface{}); ok {
		result.Structure = StructureFromMap(sub)
	}

	return result
}
