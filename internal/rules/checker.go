package rules

import (
	"fmt"
	"strings"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/transform"
)

// Checker message keys.
const (
	MsgRequiredField                  = "checker.requiredField"
	MsgRequiredCompanyQuestionComment = "checker.requiredCompanyQuestionComment"
	MsgRequiredProductList            = "checker.requiredProductList"
	MsgRequiredSmelterList            = "checker.requiredSmelterList"
	MsgInvalidEmail                   = "checker.invalidEmail"
)

// CheckerError is one validation finding. Errors are data: the checker
// never mutates the form and never fails on business-rule violations.
type CheckerError struct {
	Code          string            `json:"code" yaml:"code"`
	MessageKey    string            `json:"messageKey" yaml:"messageKey"`
	FieldPath     string            `json:"fieldPath" yaml:"fieldPath"`
	FieldLabelKey string            `json:"fieldLabelKey,omitempty" yaml:"fieldLabelKey,omitempty"`
	MessageValues map[string]string `json:"messageValues,omitempty" yaml:"messageValues,omitempty"`
	Severity      string            `json:"severity" yaml:"severity"`
}

type checker struct {
	errors []CheckerError
}

// push appends an error. Codes carry a section prefix and a global
// sequence number so two findings never share a code.
func (c *checker) push(prefix, messageKey, fieldPath, labelKey string, values map[string]string) {
	c.errors = append(c.errors, CheckerError{
		Code:          fmt.Sprintf("%s%03d", prefix, len(c.errors)+1),
		MessageKey:    messageKey,
		FieldPath:     fieldPath,
		FieldLabelKey: labelKey,
		MessageValues: values,
		Severity:      "error",
	})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RunChecker walks the form against the version definition and current
// gating state and returns every violation found.
func RunChecker(def *registry.TemplateVersionDef, state FormState, data formdata.FormData) []CheckerError {
	c := &checker{}

	activeKeys := state.ActiveMineralKeys(def)
	active := make(map[string]bool, len(activeKeys))
	for _, key := range activeKeys {
		active[key] = true
	}
	gating := CalculateAllGating(def, state.QuestionAnswers, activeKeys)

	c.checkCompanyInfo(def, state, data)
	c.checkQuestions(def, state, data, gating, activeKeys, active)
	c.checkCompanyQuestions(def, data, gating, activeKeys)
	c.checkSmelterList(def, state, data, gating, activeKeys)
	c.checkProductList(def, state, data)
	if def.TemplateType == registry.TemplateAMRT {
		c.checkMineralsScope(data)
	}
	c.checkEmailFormat(def, data)

	return c.errors
}

func (c *checker) checkCompanyInfo(def *registry.TemplateVersionDef, state FormState, data formdata.FormData) {
	for _, f := range def.CompanyInfoFields {
		if IsCompanyFieldRequired(f, state.ScopeType) && blank(data.CompanyInfo[f.Key]) {
			c.push("R", MsgRequiredField, "companyInfo."+f.Key, f.LabelKey, nil)
		}
	}
}

func (c *checker) checkQuestions(def *registry.TemplateVersionDef, state FormState, data formdata.FormData, gating map[string]GatingResult, activeKeys []string, active map[string]bool) {
	// Questions without a per-mineral split borrow the first active
	// mineral's gating (falling back to the catalog head).
	fallbackKey := ""
	if len(activeKeys) > 0 {
		fallbackKey = activeKeys[0]
	} else if len(def.MineralScope.Minerals) > 0 {
		fallbackKey = def.MineralScope.Minerals[0].Key
	}
	for _, q := range def.Questions {
		if q.PerMineral {
			for _, key := range activeKeys {
				if !IsQuestionRequired(def, gating, q.Key, key, active) {
					continue
				}
				if blank(formdata.GetAnswerValue(data.Questions, q.Key, key, true)) {
					c.push("E", MsgRequiredField, "questions."+q.Key+"."+key, q.LabelKey, nil)
				}
			}
			continue
		}
		if !IsQuestionRequired(def, gating, q.Key, fallbackKey, map[string]bool{fallbackKey: true}) {
			continue
		}
		if blank(formdata.GetAnswerValue(data.Questions, q.Key, "", false)) {
			c.push("E", MsgRequiredField, "questions."+q.Key, q.LabelKey, nil)
		}
	}
}

func (c *checker) checkCompanyQuestions(def *registry.TemplateVersionDef, data formdata.FormData, gating map[string]GatingResult, activeKeys []string) {
	if !CompanyQuestionsRequired(gating, activeKeys) {
		return
	}
	for _, q := range def.CompanyQuestions {
		commentLabel := q.CommentLabelKey
		if commentLabel == "" {
			commentLabel = q.LabelKey
		}
		commentTriggered := func(answer string) bool {
			return q.HasCommentField && len(q.CommentRequiredWhen) > 0 && inSet(answer, q.CommentRequiredWhen)
		}
		if q.PerMineral {
			for _, key := range activeKeys {
				if !gating[key].CompanyQuestionsEnabled {
					continue
				}
				answer := formdata.GetAnswerValue(data.CompanyQuestions, q.Key, key, true)
				if blank(answer) {
					c.push("E", MsgRequiredField, "companyQuestions."+q.Key+"."+key, q.LabelKey, nil)
					continue
				}
				if commentTriggered(answer) {
					comment := formdata.GetAnswerValue(data.CompanyQuestions, formdata.CommentKey(q.Key), key, true)
					if blank(comment) {
						c.push("E", MsgRequiredCompanyQuestionComment, "companyQuestions."+formdata.CommentKey(q.Key)+"."+key, commentLabel, nil)
					}
				}
			}
			continue
		}
		answer := formdata.GetAnswerValue(data.CompanyQuestions, q.Key, "", false)
		if blank(answer) {
			c.push("E", MsgRequiredField, "companyQuestions."+q.Key, q.LabelKey, nil)
			continue
		}
		if commentTriggered(answer) {
			comment := formdata.GetAnswerValue(data.CompanyQuestions, formdata.CommentKey(q.Key), "", false)
			if blank(comment) {
				c.push("E", MsgRequiredCompanyQuestionComment, "companyQuestions."+formdata.CommentKey(q.Key), commentLabel, nil)
			}
		}
	}
}

func (c *checker) checkSmelterList(def *registry.TemplateVersionDef, state FormState, data formdata.FormData, gating map[string]GatingResult, activeKeys []string) {
	required := RequiredSmelterMinerals(gating, activeKeys)
	if len(required) == 0 {
		return
	}
	labelKeys := formdata.MineralLabelKeys(def)
	customLabels := formdata.CustomMineralLabels(def, state.SelectedMinerals, state.CustomMinerals)

	present := make(map[string]bool, len(data.SmelterList))
	for _, row := range data.SmelterList {
		present[row.Metal] = true
	}
	for _, key := range required {
		if present[key] {
			continue
		}
		if label, ok := customLabels[key]; ok {
			c.push("R", MsgRequiredSmelterList, "smelterList."+key, "", map[string]string{"field": label})
		} else {
			c.push("R", MsgRequiredSmelterList, "smelterList."+key, labelKeys[key], nil)
		}
	}

	lookupRuleApplies := def.SmelterList.HasLookup &&
		(def.TemplateType == registry.TemplateEMRT || def.TemplateType == registry.TemplateAMRT)
	requiredSet := make(map[string]bool, len(required))
	for _, key := range required {
		requiredSet[key] = true
	}
	if lookupRuleApplies {
		// Lookup is only owed on rows whose metal is under an open gate.
		for i, row := range data.SmelterList {
			if blank(row.Metal) || !requiredSet[row.Metal] {
				continue
			}
			if blank(row.SmelterLookup) {
				c.push("R", MsgRequiredField, fmt.Sprintf("smelterList.%d.smelterLookup", i), "tables.smelterLookup", nil)
			}
		}
	}

	if def.SmelterList.HasLookup && def.SmelterList.NotListedRequireNameCountry {
		for i, row := range data.SmelterList {
			if !transform.IsSmelterNotListed(row.SmelterLookup) {
				continue
			}
			if blank(row.SmelterName) {
				c.push("R", MsgRequiredField, fmt.Sprintf("smelterList.%d.smelterName", i), "tables.smelterName", nil)
			}
			if blank(row.SmelterCountry) {
				c.push("R", MsgRequiredField, fmt.Sprintf("smelterList.%d.smelterCountry", i), "tables.country", nil)
			}
		}
	}
}

func (c *checker) checkProductList(def *registry.TemplateVersionDef, state FormState, data formdata.FormData) {
	if !ProductListRequired(state.ScopeType) {
		return
	}
	if len(data.ProductList) == 0 {
		c.push("R", MsgRequiredProductList, "productList", "", nil)
		return
	}
	for i, row := range data.ProductList {
		if blank(row.ProductNumber) {
			c.push("R", MsgRequiredField, fmt.Sprintf("productList.%d.productNumber", i), def.ProductList.ProductNumberLabelKey, nil)
		}
	}
}

func (c *checker) checkMineralsScope(data formdata.FormData) {
	for i, row := range data.MineralsScope {
		if !blank(row.Mineral) && blank(row.Reason) {
			c.push("A", MsgRequiredField, fmt.Sprintf("mineralsScope.%d.reason", i), "tables.mineralsScopeReason", nil)
		}
	}
}

func (c *checker) checkEmailFormat(def *registry.TemplateVersionDef, data formdata.FormData) {
	for _, f := range def.CompanyInfoFields {
		if f.Type != registry.FieldEmail {
			continue
		}
		value := data.CompanyInfo[f.Key]
		if !blank(value) && !transform.IsValidEmail(value) {
			c.push("E", MsgInvalidEmail, "companyInfo."+f.Key, f.LabelKey, nil)
		}
	}
}
