package legacy

import (
	"fmt"
	"strings"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/schema"
)

// smelterStateKeys are the legacy smelter columns whose original encoding
// must be remembered for patch-back.
var smelterStateKeys = []string{
	"smelterName", "smelterLookUp", "smelterCountry", "smelterId",
	"remark", "isRecycle", "mineName", "mineCountry", "suggest",
}

var mineStateKeys = []string{
	"mineFacilityName", "mineFacilityCountry", "mineFacilityProvince", "comments",
}

// productFieldAliases lists, per internal product field, the canonical
// legacy key followed by its historical alias.
var productFieldAliases = []struct {
	internal string
	keys     [2]string
}{
	{"productNumber", [2]string{"productNumber", "partNumber"}},
	{"productName", [2]string{"productName", "partName"}},
	{"requesterNumber", [2]string{"requesterNumber", "requestPartNumber"}},
	{"requesterName", [2]string{"requesterName", "requestPartName"}},
	{"comments", [2]string{"comments", "remark"}},
}

type importer struct {
	p    *templatePlan
	ctx  *RoundtripContext
	data formdata.FormData
}

// ToInternal converts a decoded legacy document into a snapshot plus the
// roundtrip context needed to export it again without data loss.
func ToInternal(doc map[string]any) (*schema.Snapshot, *RoundtripContext, error) {
	templateType, versionID, err := Detect(doc)
	if err != nil {
		return nil, nil, err
	}
	p, err := planFor(templateType, versionID)
	if err != nil {
		return nil, nil, err
	}
	im := &importer{
		p:    p,
		ctx:  newContext(p, doc),
		data: formdata.CreateEmptyFormData(p.def),
	}

	rangeRows := asSlice(doc["cmtRangeQuestions"])
	im.importScope(rangeRows)
	im.importCompany(asMap(doc["cmtCompany"]))
	im.importRangeQuestions(rangeRows)
	im.importCompanyQuestions(asSlice(doc["cmtCompanyQuestions"]))
	im.importSmelters(asSlice(doc["cmtSmelters"]))
	im.importMines(asSlice(doc["minList"]))
	im.importProducts(asSlice(doc["cmtParts"]))
	im.importReasons(asSlice(doc["amrtReasonList"]))

	return schema.NewSnapshot(templateType, versionID, im.data), im.ctx, nil
}

// resolveMineral maps a legacy mineral label to its internal key and
// remembers the exact spelling the document used. Labels that match
// nothing are returned verbatim and act as their own key.
func (im *importer) resolveMineral(raw string) string {
	label := strings.TrimSpace(raw)
	if label == "" {
		return ""
	}
	norm := normalizeLabel(label)
	if key, ok := im.p.mineralKeyByLabel[norm]; ok {
		if _, seen := im.ctx.mineralLabelByKey[key]; !seen {
			im.ctx.mineralLabelByKey[key] = label
		}
		im.ctx.labelToKey[norm] = key
		return key
	}
	if key, ok := im.ctx.labelToKey[norm]; ok {
		return key
	}
	return label
}

func rowInt(v any) (int, bool) {
	n, ok := v.(interface{ Int64() (int64, error) })
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}

// importScope derives the mineral selection of non-fixed scopes from the
// distinct mineral labels of the type-1 range question rows.
func (im *importer) importScope(rangeRows []any) {
	scope := im.p.def.MineralScope
	if scope.Mode == registry.ScopeFixed {
		return
	}
	labels := []string{}
	seen := map[string]bool{}
	for _, rv := range rangeRows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		if t, ok := rowInt(row["type"]); !ok || t != 1 {
			continue
		}
		label := strings.TrimSpace(str(row["question"]))
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return
	}

	switch scope.Mode {
	case registry.ScopeDynamicDropdown:
		selected := []string{}
		custom := []string{}
		hasOther := false
		for _, label := range labels {
			norm := normalizeLabel(label)
			if key, ok := im.p.mineralKeyByLabel[norm]; ok && key != "other" {
				selected = append(selected, key)
				im.resolveMineral(label)
				continue
			}
			if len(custom) >= scope.OtherSlotCount {
				continue
			}
			slot := len(custom)
			custom = append(custom, label)
			if !hasOther {
				hasOther = true
				selected = append(selected, "other")
			}
			otherKey := formdata.OtherMineralKey(slot)
			im.ctx.labelToKey[norm] = otherKey
			im.ctx.mineralLabelByKey[otherKey] = label
		}
		if len(selected) > 0 {
			im.data.SelectedMinerals = selected
		}
		if len(custom) > 0 {
			im.data.CustomMinerals = custom
		}
	case registry.ScopeFreeText:
		if scope.MaxCount > 0 && len(labels) > scope.MaxCount {
			labels = labels[:scope.MaxCount]
		}
		im.data.CustomMinerals = labels
		for i, label := range labels {
			if i >= len(scope.Minerals) {
				break
			}
			key := scope.Minerals[i].Key
			im.ctx.labelToKey[normalizeLabel(label)] = key
			im.ctx.mineralLabelByKey[key] = label
		}
	}
}

func (im *importer) importCompany(company map[string]any) {
	for _, internal := range companyInfoOrder {
		legacyKey := legacyCompanyKeyByInternal[internal]
		if legacyKey == "effectiveDate" {
			im.importEffectiveDate(company)
			continue
		}
		var value any
		if company != nil {
			im.ctx.companyFieldStates[legacyKey] = stateOf(company, legacyKey)
			value = company[legacyKey]
		}
		im.data.CompanyInfo[internal] = str(value)
	}
}

func (im *importer) importEffectiveDate(company map[string]any) {
	st := effectiveDateState{OriginalType: "missing"}
	if company != nil {
		if v, ok := company["effectiveDate"]; ok {
			st.OriginalValue = v
			switch v.(type) {
			case nil:
				st.OriginalType = "null"
			case string:
				st.OriginalType = "string"
			default:
				if _, isNum := rowInt(v); isNum || toAnyString(v) != "" {
					st.OriginalType = "number"
				} else {
					st.OriginalType = "other"
				}
			}
			if st.OriginalType == "string" || st.OriginalType == "number" {
				st.Derived = epochMsToDateString(v)
			}
		}
	}
	im.ctx.effectiveDate = st
	im.data.CompanyInfo["authorizationDate"] = st.Derived
}

func (im *importer) questionByKey(key string) (registry.QuestionDef, bool) {
	for _, q := range im.p.def.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return registry.QuestionDef{}, false
}

func (im *importer) importRangeQuestions(rows []any) {
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		im.ctx.rangeStates[i] = answerRemarkState{
			Answer: stateOf(row, "answer"),
			Remark: stateOf(row, "remark"),
		}
		t, ok := rowInt(row["type"])
		if !ok {
			continue
		}
		qKey := im.p.questionKeyByType[t]
		if qKey == "" {
			continue
		}
		q, _ := im.questionByKey(qKey)
		mineralKey := im.resolveMineral(str(row["question"]))
		im.ctx.rangeIndex[qKey+"|"+mineralKey] = i

		isCRTQ4 := im.p.templateType == registry.TemplateCRT && qKey == "q4"
		answer := normalizeLegacyAnswer(row["answer"], isCRTQ4)
		remark := str(row["remark"])
		if q.PerMineral {
			im.data.Questions[qKey] = im.data.Questions[qKey].Set(mineralKey, answer)
			im.data.QuestionComments[qKey] = im.data.QuestionComments[qKey].Set(mineralKey, remark)
		} else {
			im.data.Questions[qKey] = formdata.Scalar(answer)
			im.data.QuestionComments[qKey] = formdata.Scalar(remark)
		}
	}
}

func (im *importer) importCompanyQuestions(rows []any) {
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		im.ctx.companyQuestionStates[i] = answerRemarkState{
			Answer: stateOf(row, "answer"),
			Remark: stateOf(row, "remark"),
		}
		name := strings.TrimSpace(str(row["question"]))
		var q registry.CompanyQuestionDef
		found := false
		for _, cq := range im.p.def.CompanyQuestions {
			if strings.EqualFold(cq.Key, name) {
				q = cq
				found = true
				break
			}
		}
		if !found {
			continue
		}
		answer := str(row["answer"])
		remark := str(row["remark"])
		commentKey := formdata.CommentKey(q.Key)
		_, commentSeeded := im.data.CompanyQuestions[commentKey]
		if q.PerMineral {
			mineralKey := im.resolveMineral(str(row["type"]))
			im.ctx.companyQuestionIndex[q.Key+"|"+mineralKey] = i
			im.data.CompanyQuestions[q.Key] = im.data.CompanyQuestions[q.Key].Set(mineralKey, answer)
			if commentSeeded {
				im.data.CompanyQuestions[commentKey] = im.data.CompanyQuestions[commentKey].Set(mineralKey, remark)
			}
		} else {
			im.ctx.companyQuestionIndex[q.Key+"|"] = i
			im.data.CompanyQuestions[q.Key] = formdata.Scalar(answer)
			if commentSeeded {
				im.data.CompanyQuestions[commentKey] = formdata.Scalar(remark)
			}
		}
	}
}

func (im *importer) importSmelters(rows []any) {
	list := []formdata.SmelterRow{}
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		states := map[string]FieldState{}
		for _, key := range smelterStateKeys {
			states[key] = stateOf(row, key)
		}
		im.ctx.smelterStates[i] = states

		id := coerceID(row["id"], fmt.Sprintf("smelter-%d", i))
		im.ctx.smelterIndexByID[id] = i

		standardName := str(row["standardSmelterName"])
		if _, ok := row["smelterName"]; ok && row["smelterName"] == nil {
			im.ctx.smelterNameFallback[i] = standardName
		}
		idNumber := firstNonEmpty(toAnyString(row["smelterNumber"]), toAnyString(row["smelterId"]))

		list = append(list, formdata.SmelterRow{
			ID:                    id,
			Metal:                 im.resolveMineral(str(row["metal"])),
			SmelterLookup:         firstNonEmpty(str(row["smelterLookUp"]), str(row["smelterName"]), standardName),
			SmelterName:           firstNonEmpty(standardName, str(row["smelterName"])),
			SmelterCountry:        str(row["smelterCountry"]),
			SmelterID:             idNumber,
			SmelterIdentification: idNumber,
			SourceID:              toAnyString(row["smelterIdentification"]),
			SmelterStreet:         str(row["smelterStreet"]),
			SmelterCity:           str(row["smelterCity"]),
			SmelterState:          str(row["smelterProvince"]),
			SmelterContactName:    str(row["smelterContact"]),
			SmelterContactEmail:   str(row["smelterEmail"]),
			ProposedNextSteps:     str(row["suggest"]),
			MineName:              str(row["mineName"]),
			MineCountry:           str(row["mineCountry"]),
			RecycledScrap:         normalizeLegacyYesNoUnknown(row["isRecycle"]),
			Comments:              str(row["remark"]),
		})
	}
	im.data.SmelterList = list
}

func (im *importer) importMines(rows []any) {
	list := []formdata.MineRow{}
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		states := map[string]FieldState{}
		for _, key := range mineStateKeys {
			states[key] = stateOf(row, key)
		}
		im.ctx.mineStates[i] = states

		id := fmt.Sprintf("mine-%d", i)
		im.ctx.mineIndexByID[id] = i
		list = append(list, formdata.MineRow{
			ID:                id,
			Metal:             im.resolveMineral(str(row["metal"])),
			SmelterName:       str(row["smelterName"]),
			MineName:          str(row["mineFacilityName"]),
			MineCountry:       str(row["mineFacilityCountry"]),
			MineID:            toAnyString(row["mineIdentificationNumber"]),
			MineIDSource:      str(row["mineIdentification"]),
			MineStreet:        str(row["mineFacilityStreet"]),
			MineCity:          str(row["mineFacilityCity"]),
			MineProvince:      str(row["mineFacilityProvince"]),
			MineDistrict:      "",
			MineContactName:   str(row["mineFacilityContact"]),
			MineContactEmail:  str(row["mineFacilityEmail"]),
			ProposedNextSteps: str(row["proposedNextSteps"]),
			Comments:          str(row["comments"]),
		})
	}
	im.data.MineList = list
}

func (im *importer) importProducts(rows []any) {
	list := []formdata.ProductRow{}
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		keys := map[string]string{}
		states := map[string]FieldState{}
		for _, alias := range productFieldAliases {
			chosen := alias.keys[0]
			if _, ok := row[alias.keys[0]]; !ok {
				if _, ok := row[alias.keys[1]]; ok {
					chosen = alias.keys[1]
				}
			}
			keys[alias.internal] = chosen
			states[alias.keys[0]] = stateOf(row, alias.keys[0])
			states[alias.keys[1]] = stateOf(row, alias.keys[1])
		}
		im.ctx.productKeys[i] = keys
		im.ctx.productStates[i] = states

		idRaw, hasID := row["id"]
		if !hasID || idRaw == nil {
			idRaw = row["partId"]
		}
		id := coerceID(idRaw, fmt.Sprintf("product-%d", i))
		im.ctx.productIndexByID[id] = i

		list = append(list, formdata.ProductRow{
			ID:              id,
			ProductNumber:   toAnyString(row[keys["productNumber"]]),
			ProductName:     toAnyString(row[keys["productName"]]),
			RequesterNumber: toAnyString(row[keys["requesterNumber"]]),
			RequesterName:   toAnyString(row[keys["requesterName"]]),
			Comments:        toAnyString(row[keys["comments"]]),
		})
	}
	im.data.ProductList = list
}

func (im *importer) importReasons(rows []any) {
	list := []formdata.MineralsScopeRow{}
	for i, rv := range rows {
		row := asMap(rv)
		if row == nil {
			continue
		}
		im.ctx.reasonStates[i] = map[string]FieldState{
			"metal":  stateOf(row, "metal"),
			"reason": stateOf(row, "reason"),
		}
		id := coerceID(row["id"], fmt.Sprintf("minerals-scope-%d", i))
		im.ctx.reasonIndexByID[id] = i
		list = append(list, formdata.MineralsScopeRow{
			ID:      id,
			Mineral: im.resolveMineral(str(row["metal"])),
			Reason:  str(row["reason"]),
		})
	}
	im.data.MineralsScope = list
}
