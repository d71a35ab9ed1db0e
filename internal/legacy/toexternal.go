package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/schema"
)

// ErrContextMismatch is returned when a snapshot is exported with a
// context captured from a different template or version.
var ErrContextMismatch = errors.New("roundtrip context does not match snapshot template/version")

type exporter struct {
	p    *templatePlan
	ctx  *RoundtripContext
	data formdata.FormData
	out  map[string]any

	activeKeys   []string
	activeSet    map[string]bool
	customLabels map[string]string
}

// ToExternal writes the snapshot's form data back into the legacy shape
// recorded by ctx. Unedited fields reproduce the original document
// exactly; edits become minimal targeted patches.
func ToExternal(snapshot *schema.Snapshot, ctx *RoundtripContext) (map[string]any, error) {
	if snapshot.TemplateType != ctx.TemplateType || snapshot.VersionID != ctx.VersionID {
		return nil, fmt.Errorf("%w: snapshot %s@%s, context %s@%s", ErrContextMismatch,
			snapshot.TemplateType, snapshot.VersionID, ctx.TemplateType, ctx.VersionID)
	}
	ex := &exporter{
		p:    ctx.plan,
		ctx:  ctx,
		data: snapshot.Data,
		out:  deepClone(ctx.original).(map[string]any),
	}
	ex.activeKeys = formdata.ActiveMineralKeys(ex.p.def, ex.data.SelectedMinerals, ex.data.CustomMinerals)
	ex.activeSet = make(map[string]bool, len(ex.activeKeys))
	for _, key := range ex.activeKeys {
		ex.activeSet[key] = true
	}
	ex.customLabels = formdata.CustomMineralLabels(ex.p.def, ex.data.SelectedMinerals, ex.data.CustomMinerals)

	ex.patchCompanyInfo()
	ex.patchRangeQuestions()
	ex.patchCompanyQuestions()
	ex.patchSmelters()
	ex.patchMines()
	ex.patchProducts()
	ex.patchReasons()
	return ex.out, nil
}

// labelForMineral returns the legacy label to write for a mineral key:
// the current custom label, then the spelling the original document
// used, then the preferred catalog label, then the key itself.
func (ex *exporter) labelForMineral(key string) string {
	if label, ok := ex.customLabels[key]; ok {
		return label
	}
	if label, ok := ex.ctx.mineralLabelByKey[key]; ok {
		return label
	}
	if label, ok := ex.p.preferredLabelByKey[key]; ok {
		return label
	}
	return key
}

// mineralKeyForLabel resolves a label already present in the document to
// an internal key, or "" when it maps to nothing known.
func (ex *exporter) mineralKeyForLabel(label string) string {
	norm := normalizeLabel(label)
	if key, ok := ex.p.mineralKeyByLabel[norm]; ok {
		return key
	}
	if key, ok := ex.ctx.labelToKey[norm]; ok {
		return key
	}
	return ""
}

// mineralKeysFor returns the active minerals followed by any extra keys
// the given answer maps carry, sorted for determinism.
func (ex *exporter) mineralKeysFor(maps ...map[string]string) []string {
	keys := append([]string{}, ex.activeKeys...)
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		seen[key] = true
	}
	extras := []string{}
	for _, m := range maps {
		for key := range m {
			if key != "" && !seen[key] {
				seen[key] = true
				extras = append(extras, key)
			}
		}
	}
	sort.Strings(extras)
	return append(keys, extras...)
}

func (ex *exporter) patchCompanyInfo() {
	company := asMap(ex.out["cmtCompany"])
	created := false
	if company == nil {
		company = map[string]any{}
		created = true
	}
	for _, internal := range companyInfoOrder {
		legacyKey := legacyCompanyKeyByInternal[internal]
		next := ex.data.CompanyInfo[internal]
		if legacyKey == "effectiveDate" {
			if value, present := ex.effectiveDateValue(next); present {
				company[legacyKey] = value
			} else {
				delete(company, legacyKey)
			}
			continue
		}
		st := ex.ctx.companyFieldStates[legacyKey]
		if value, present := writeNullable(st, next); present {
			company[legacyKey] = value
		} else {
			delete(company, legacyKey)
		}
	}
	if created && len(company) > 0 {
		ex.out["cmtCompany"] = company
	}
}

// effectiveDateValue maps the internal ISO authorization date back to the
// original epoch encoding. An unchanged date writes the original value
// bit for bit.
func (ex *exporter) effectiveDateValue(next string) (any, bool) {
	st := ex.ctx.effectiveDate
	if next == st.Derived {
		if st.OriginalType == "missing" {
			return nil, false
		}
		return st.OriginalValue, true
	}
	if next == "" {
		switch st.OriginalType {
		case "missing":
			return nil, false
		case "null":
			return nil, true
		case "number":
			return json.Number("0"), true
		default:
			return "", true
		}
	}
	t, err := time.ParseInLocation("2006-01-02", next, time.UTC)
	if err != nil {
		if st.OriginalType == "missing" {
			return nil, false
		}
		return st.OriginalValue, true
	}
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if st.OriginalType == "number" {
		return json.Number(ms), true
	}
	return ms, true
}

func (ex *exporter) rangeStateAt(idx int) answerRemarkState {
	if st, ok := ex.ctx.rangeStates[idx]; ok {
		return st
	}
	present := FieldState{Exists: true, WasString: true}
	return answerRemarkState{Answer: present, Remark: present}
}

func (ex *exporter) patchRangeQuestions() {
	_, preExisted := ex.ctx.original["cmtRangeQuestions"]
	rows := asSlice(ex.out["cmtRangeQuestions"])

	for _, q := range ex.p.def.Questions {
		questionType, ok := ex.p.questionTypeByKey[q.Key]
		if !ok {
			continue
		}
		if q.PerMineral {
			answers := ex.data.Questions[q.Key].ByMineral
			remarks := ex.data.QuestionComments[q.Key].ByMineral
			for _, mineralKey := range ex.mineralKeysFor(answers, remarks) {
				rows = ex.patchRangeRow(rows, q.Key, questionType, mineralKey, answers[mineralKey], remarks[mineralKey])
			}
			continue
		}
		firstKey := ""
		if len(ex.p.def.MineralScope.Minerals) > 0 {
			firstKey = ex.p.def.MineralScope.Minerals[0].Key
		}
		rows = ex.patchRangeRow(rows, q.Key, questionType,
			firstKey, ex.data.Questions[q.Key].Value, ex.data.QuestionComments[q.Key].Value)
	}

	rows = ex.pruneRangeRows(rows)
	if !preExisted && len(rows) == 0 {
		delete(ex.out, "cmtRangeQuestions")
		return
	}
	ex.out["cmtRangeQuestions"] = rows
}

func (ex *exporter) patchRangeRow(rows []any, questionKey string, questionType int, mineralKey, answer, remark string) []any {
	label := ex.labelForMineral(mineralKey)
	idx, ok := ex.ctx.rangeIndex[questionKey+"|"+mineralKey]
	if !ok {
		if answer == "" && remark == "" {
			return rows
		}
		return append(rows, map[string]any{
			"type":     json.Number(strconv.Itoa(questionType)),
			"question": label,
			"answer":   answer,
			"remark":   remark,
		})
	}
	item := asMap(rows[idx])
	if item == nil {
		return rows
	}
	st := ex.rangeStateAt(idx)
	if value, present := writeNullable(st.Answer, answer); present {
		item["answer"] = value
	} else {
		delete(item, "answer")
	}
	if value, present := writeNullable(st.Remark, remark); present {
		item["remark"] = value
	} else {
		delete(item, "remark")
	}
	item["type"] = json.Number(strconv.Itoa(questionType))
	item["question"] = label
	return rows
}

// pruneRangeRows drops per-mineral rows whose mineral is no longer in
// active scope. Rows whose label maps to nothing stay untouched.
func (ex *exporter) pruneRangeRows(rows []any) []any {
	kept := make([]any, 0, len(rows))
	for _, rv := range rows {
		row := asMap(rv)
		if row != nil {
			if t, ok := rowInt(row["type"]); ok {
				if qKey := ex.p.questionKeyByType[t]; qKey != "" {
					if q, found := ex.questionByKey(qKey); found && q.PerMineral {
						key := ex.mineralKeyForLabel(str(row["question"]))
						if key != "" && !ex.activeSet[key] {
							continue
						}
					}
				}
			}
		}
		kept = append(kept, rv)
	}
	return kept
}

func (ex *exporter) questionByKey(key string) (registry.QuestionDef, bool) {
	for _, q := range ex.p.def.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return registry.QuestionDef{}, false
}

func (ex *exporter) companyQuestionStateAt(idx int) answerRemarkState {
	if st, ok := ex.ctx.companyQuestionStates[idx]; ok {
		return st
	}
	present := FieldState{Exists: true, WasString: true}
	return answerRemarkState{Answer: present, Remark: present}
}

func (ex *exporter) patchCompanyQuestions() {
	_, preExisted := ex.ctx.original["cmtCompanyQuestions"]
	rows := asSlice(ex.out["cmtCompanyQuestions"])

	for _, q := range ex.p.def.CompanyQuestions {
		commentKey := formdata.CommentKey(q.Key)
		if q.PerMineral {
			answers := ex.data.CompanyQuestions[q.Key].ByMineral
			remarks := ex.data.CompanyQuestions[commentKey].ByMineral
			for _, mineralKey := range ex.mineralKeysFor(answers, remarks) {
				rows = ex.patchCompanyQuestionRow(rows, q, mineralKey, answers[mineralKey], remarks[mineralKey])
			}
			continue
		}
		rows = ex.patchCompanyQuestionRow(rows, q, "",
			ex.data.CompanyQuestions[q.Key].Value, ex.data.CompanyQuestions[commentKey].Value)
	}

	rows = ex.pruneCompanyQuestionRows(rows)
	if !preExisted && len(rows) == 0 {
		delete(ex.out, "cmtCompanyQuestions")
		return
	}
	ex.out["cmtCompanyQuestions"] = rows
}

func (ex *exporter) patchCompanyQuestionRow(rows []any, q registry.CompanyQuestionDef, mineralKey, answer, remark string) []any {
	idx, ok := ex.ctx.companyQuestionIndex[q.Key+"|"+mineralKey]
	if !ok {
		if answer == "" && remark == "" {
			return rows
		}
		item := map[string]any{
			"question": strings.ToUpper(q.Key),
			"answer":   answer,
			"remark":   remark,
		}
		if q.PerMineral {
			item["type"] = ex.labelForMineral(mineralKey)
		} else {
			item["type"] = nil
		}
		return append(rows, item)
	}
	item := asMap(rows[idx])
	if item == nil {
		return rows
	}
	st := ex.companyQuestionStateAt(idx)
	if value, present := writeNullable(st.Answer, answer); present {
		item["answer"] = value
	} else {
		delete(item, "answer")
	}
	if value, present := writeNullable(st.Remark, remark); present {
		item["remark"] = value
	} else {
		delete(item, "remark")
	}
	if q.PerMineral {
		item["type"] = ex.labelForMineral(mineralKey)
	} else if _, has := item["type"]; has {
		item["type"] = nil
	}
	return rows
}

func (ex *exporter) pruneCompanyQuestionRows(rows []any) []any {
	kept := make([]any, 0, len(rows))
	for _, rv := range rows {
		drop := false
		if row := asMap(rv); row != nil {
			name := strings.TrimSpace(str(row["question"]))
			for _, q := range ex.p.def.CompanyQuestions {
				if !q.PerMineral || !strings.EqualFold(q.Key, name) {
					continue
				}
				key := ex.mineralKeyForLabel(str(row["type"]))
				drop = key != "" && !ex.activeSet[key]
				break
			}
		}
		if !drop {
			kept = append(kept, rv)
		}
	}
	return kept
}
