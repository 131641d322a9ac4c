package domain

type NodePropertyType string

const (
	NodePropertyType_String   NodePropertyType = "string"
	NodePropertyType_Text     NodePropertyType = "text"
	NodePropertyType_TagInput NodePropertyType = "tag_input"
	NodePropertyType_Integer  NodePropertyType = "integer"
	NodePropertyType_Number   NodePropertyType = "number"
	NodePropertyType_Boolean  NodePropertyType = "boolean"
	NodePropertyType_Array    NodePropertyType = "array"
	NodePropertyType_Map      NodePropertyType = "map"
	NodePropertyType_File     NodePropertyType = "file"

	NodePropertyType_CodeEditor NodePropertyType = "code_editor"
)

type CodeLanguageType string

const (
	CodeLanguageType_JSON CodeLanguageType = "json"
)

type NodeProperty struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
	Hidden      bool             `json:"hidden"`
	Advanced    bool             `json:"advanced"` // For advanced options that should be hidden by default
	Type        NodePropertyType `json:"type"`
	IsSecret    bool             `json:"is_secret,omitempty"`

	// Validation
	MinLength int `json:"min_length,omitempty"`
	MaxLength int `json:"max_length,omitempty"`

	// Dynamic behavior
	DependsOn *DependsOn `json:"depends_on,omitempty"` // Condition for when this field should be shown
	HideIf    *HideIf    `json:"hide_if,omitempty"`    // Conditions for when this field should be hidden
	ShowIf    *ShowIf    `json:"show_if,omitempty"`    // Conditions for when this field should be shown

	// UI display
	Group       string `json:"group,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Help        string `json:"help,omitempty"`

	// Options based on type
	Options    []NodePropertyOption   `json:"options,omitempty"`
	NumberOpts *NumberPropertyOptions `json:"number_opts,omitempty"`
	ArrayOpts  *ArrayPropertyOptions  `json:"array_opts,omitempty"`
	MapOpts    *MapPropertyOptions    `json:"map_opts,omitempty"`

	// Code editor specific settings
	CodeLanguage CodeLanguageType `json:"code_language,omitempty"`

	// Dynamic data loading
	Peekable     bool                    `json:"peekable"`
	PeekableType IntegrationPeekableType `json:"peekable_type,omitempty"`

	ExpressionChoice bool `json:"expression_choice"` // Whether this field can be set using expressions
}

type NodePropertyOption struct {
	Label       string `json:"label"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}

type DependsOn struct {
	PropertyKey string `json:"property_key"`
	Value       any    `json:"value"`
}

type HideIf struct {
	PropertyKey string `json:"property_key"`
	Values      []any  `json:"values"`
}

type ShowIf struct {
	PropertyKey string `json:"property_key"`
	Values      []any  `json:"values"`
}

type NumberPropertyOptions struct {
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Default float64 `json:"default,omitempty"`
	Step    float64 `json:"step,omitempty"`
}

type ArrayPropertyOptions struct {
	MinItems       int              `json:"min_items,omitempty"`
	MaxItems       int              `json:"max_items,omitempty"`
	ItemType       NodePropertyType `json:"item_type"`
	ItemProperties []NodeProperty   `json:"item_properties,omitempty"`
}

type MapPropertyOptions struct {
	Properties []NodeProperty `json:"properties"`
}
