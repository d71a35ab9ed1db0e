package legacy

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"rmi-forms/internal/registry"
)

// legacyCompanyKeyByInternal maps internal company field keys to the
// legacy cmtCompany keys that carry them. Identical keys are listed
// anyway so the plan stays the single source of truth.
var legacyCompanyKeyByInternal = map[string]string{
	"companyName":       "companyName",
	"declarationScope":  "species",
	"scopeDescription":  "rangeDescription",
	"companyId":         "identify",
	"companyAuthId":     "authorization",
	"address":           "address",
	"contactName":       "contactName",
	"contactEmail":      "contactEmail",
	"contactPhone":      "contactPhone",
	"authorizerName":    "authorizerName",
	"authorizerTitle":   "authorizerJobTitle",
	"authorizerEmail":   "authorizerEmail",
	"authorizerPhone":   "authorizerPhone",
	"authorizationDate": "effectiveDate",
}

// companyInfoOrder fixes the patch order of company fields.
var companyInfoOrder = []string{
	"companyName", "declarationScope", "scopeDescription", "companyId",
	"companyAuthId", "address", "contactName", "contactEmail",
	"contactPhone", "authorizerName", "authorizerTitle", "authorizerEmail",
	"authorizerPhone", "authorizationDate",
}

// mineralLabelOverrides holds display labels that plain key splitting
// would get wrong.
var mineralLabelOverrides = map[string]string{
	"rareEarthElements": "Rare Earth Elements",
	"sodaAsh":           "Soda Ash",
}

// normalizeLabel folds a mineral label to a comparison key: lowercase
// alphanumerics only.
func normalizeLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitCamel inserts spaces at lower-to-upper boundaries and folds
// dashes and underscores to spaces.
func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '-' || r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func toTitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// preferredMineralLabel is the label used when the imported document
// never showed us one.
func preferredMineralLabel(key string) string {
	if label, ok := mineralLabelOverrides[key]; ok {
		return label
	}
	return toTitleCase(splitCamel(key))
}

var questionKeyRe = regexp.MustCompile(`^q(\d+)$`)

// templatePlan is the precomputed lookup state for one template version.
type templatePlan struct {
	templateType registry.TemplateType
	versionID    string
	def          *registry.TemplateVersionDef

	mineralKeyByLabel   map[string]string // normalized label -> key
	preferredLabelByKey map[string]string
	questionTypeByKey   map[string]int
	questionKeyByType   map[int]string
}

var (
	planMu    sync.Mutex
	planCache = map[string]*templatePlan{}
)

func planFor(t registry.TemplateType, versionID string) (*templatePlan, error) {
	cacheKey := string(t) + "@" + versionID
	planMu.Lock()
	defer planMu.Unlock()
	if p, ok := planCache[cacheKey]; ok {
		return p, nil
	}
	def, err := registry.GetVersionDef(t, versionID)
	if err != nil {
		return nil, err
	}
	p := &templatePlan{
		templateType:        t,
		versionID:           versionID,
		def:                 def,
		mineralKeyByLabel:   map[string]string{},
		preferredLabelByKey: map[string]string{},
		questionTypeByKey:   map[string]int{},
		questionKeyByType:   map[int]string{},
	}
	for _, m := range def.MineralScope.Minerals {
		for _, candidate := range []string{m.Key, splitCamel(m.Key), preferredMineralLabel(m.Key)} {
			p.mineralKeyByLabel[normalizeLabel(candidate)] = m.Key
		}
		p.preferredLabelByKey[m.Key] = preferredMineralLabel(m.Key)
	}
	for _, q := range def.Questions {
		if m := questionKeyRe.FindStringSubmatch(q.Key); m != nil {
			n, _ := strconv.Atoi(m[1])
			p.questionTypeByKey[q.Key] = n
			p.questionKeyByType[n] = q.Key
		}
	}
	planCache[cacheKey] = p
	return p, nil
}
