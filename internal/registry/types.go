// Package registry holds the static catalog of supported declaration
// templates. Each template family (CMRT, EMRT, CRT, AMRT) publishes a set
// of versions, and every version carries the full configuration the rest
// of the system needs: pages, mineral scope, company fields, questions,
// gating conditions and table layouts. Definitions are built once at
// package init and treated as immutable afterwards.
package registry

// TemplateType identifies a template family.
type TemplateType string

const (
	TemplateCMRT TemplateType = "cmrt"
	TemplateEMRT TemplateType = "emrt"
	TemplateCRT  TemplateType = "crt"
	TemplateAMRT TemplateType = "amrt"
)

// TemplateVersion is one selectable version of a template family.
type TemplateVersion struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// TemplateDefinition describes a template family and its versions.
type TemplateDefinition struct {
	Type           TemplateType      `json:"type" yaml:"type"`
	Name           string            `json:"name" yaml:"name"`
	FullNameKey    string            `json:"fullNameKey" yaml:"fullNameKey"`
	Versions       []TemplateVersion `json:"versions" yaml:"versions"`
	DefaultVersion string            `json:"defaultVersion" yaml:"defaultVersion"`
}

// PageDef is a logical page of the form.
type PageDef struct {
	Key       string
	LabelKey  string
	Available bool
}

// MineralDef is one mineral in a version's catalog.
type MineralDef struct {
	Key      string
	LabelKey string
}

// MineralScopeMode controls how the set of declared minerals is chosen.
type MineralScopeMode string

const (
	// ScopeFixed means the catalog is the scope; nothing is selectable.
	ScopeFixed MineralScopeMode = "fixed"
	// ScopeDynamicDropdown lets the respondent pick catalog minerals,
	// optionally including free-form "other" slots.
	ScopeDynamicDropdown MineralScopeMode = "dynamic-dropdown"
	// ScopeFreeText maps free-form mineral names onto fixed slots.
	ScopeFreeText MineralScopeMode = "free-text"
)

// MineralScopeConfig describes the mineral scope of a version.
type MineralScopeConfig struct {
	Mode                  MineralScopeMode
	Minerals              []MineralDef
	MaxCount              int
	DefaultCustomMinerals []string
	OtherSlotCount        int
}

// FieldType is the input kind of a company info field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
)

// Requiredness is the requirement level of a company info field.
type Requiredness int

const (
	NotRequired Requiredness = iota
	AlwaysRequired
	// ConditionallyRequired fields depend on other answers, currently
	// only the scope description when the declaration scope is "C".
	ConditionallyRequired
)

// FieldDef is a company info field.
type FieldDef struct {
	Key      string
	LabelKey string
	Type     FieldType
	Required Requiredness
}

// QuestionOption is one selectable answer.
type QuestionOption struct {
	Value    string
	LabelKey string
}

// QuestionDef is a declaration-scope (range) question.
type QuestionDef struct {
	Key              string
	LabelKey         string
	Options          []QuestionOption
	OptionsByMineral map[string][]QuestionOption
	PerMineral       bool
}

// CompanyQuestionDef is a company-level question, optionally answered per
// mineral and optionally carrying a comment field.
type CompanyQuestionDef struct {
	Key                 string
	LabelKey            string
	Options             []QuestionOption
	PerMineral          bool
	HasCommentField     bool
	CommentLabelKey     string
	CommentRequiredWhen []string
}

// GatingKind enumerates the supported gating predicates. The set is
// closed; evaluation must handle every kind.
type GatingKind int

const (
	GateAlways GatingKind = iota
	GateQ1Yes
	GateQ1Q2Yes
	GateQ1NotNo
	GateQ1Q2NotNo
	GateQ1NotNegatives
	GateQ1Q2NotNegatives
)

// GatingCondition is a predicate over the Q1/Q2 answers. Negative answer
// sets are only populated for the not-negatives kinds.
type GatingCondition struct {
	Kind        GatingKind
	Q1Negatives []string
	Q2Negatives []string
}

// GatingConfig wires gating conditions to the parts of the form they
// enable. A nil condition means the part is always enabled.
type GatingConfig struct {
	Q2               *GatingCondition
	LaterQuestions   *GatingCondition
	CompanyQuestions *GatingCondition
	SmelterList      *GatingCondition
}

// MetalSourceKind says where a table's metal dropdown gets its values.
type MetalSourceKind int

const (
	// MetalsFixed uses a fixed metal list.
	MetalsFixed MetalSourceKind = iota
	// MetalsActive uses the currently active minerals.
	MetalsActive
	// MetalsQ1Yes uses catalog minerals whose Q1 answer is Yes.
	MetalsQ1Yes
	// MetalsQ2Yes uses catalog minerals whose Q2 answer is Yes.
	MetalsQ2Yes
)

// MetalDropdownSource describes a metal dropdown. Metals is only set for
// MetalsFixed.
type MetalDropdownSource struct {
	Kind   MetalSourceKind
	Metals []MineralDef
}

// RecycledScrapOptions selects the option set of the recycled/scrap column.
type RecycledScrapOptions string

const (
	RecycledYesNo        RecycledScrapOptions = "yes-no"
	RecycledYesNoUnknown RecycledScrapOptions = "yes-no-unknown"
)

// SmelterListConfig describes the smelter table of a version.
type SmelterListConfig struct {
	Source                         MetalDropdownSource
	HasIDColumn                    bool
	HasLookup                      bool
	HasCombinedColumn              bool
	RecycledScrapOptions           RecycledScrapOptions
	NotListedRequireNameCountry    bool
	NotYetIdentifiedCountryDefault string
	NotYetIdentifiedCountryByMetal map[string]string
}

// SmelterNameMode controls how the mine table captures smelter names.
type SmelterNameMode string

const (
	SmelterNameManual   SmelterNameMode = "manual"
	SmelterNameDropdown SmelterNameMode = "dropdown"
)

// MineListConfig describes the mine table of a version. Source and
// SmelterNameMode are only meaningful when Available is true.
type MineListConfig struct {
	Available       bool
	Source          *MetalDropdownSource
	SmelterNameMode SmelterNameMode
}

// ProductListConfig describes the product table of a version.
type ProductListConfig struct {
	HasRequesterColumns   bool
	ProductNumberLabelKey string
	ProductNameLabelKey   string
	CommentLabelKey       string
}

// DateConfig bounds the authorization date. MaxDate may be empty.
type DateConfig struct {
	MinDate string
	MaxDate string
}

// TemplateVersionDef is the complete configuration of one template
// version.
type TemplateVersionDef struct {
	TemplateType      TemplateType
	Version           TemplateVersion
	Pages             []PageDef
	MineralScope      MineralScopeConfig
	CompanyInfoFields []FieldDef
	Questions         []QuestionDef
	CompanyQuestions  []CompanyQuestionDef
	Gating            GatingConfig
	SmelterList       SmelterListConfig
	MineList          MineListConfig
	ProductList       ProductListConfig
	DateConfig        DateConfig
}
