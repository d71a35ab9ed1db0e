package legacy

import (
	"rmi-forms/internal/formdata"
)

func setIfNonEmpty(item map[string]any, key, value string) {
	if value != "" {
		item[key] = value
	}
}

// ensureRowID keeps an existing legacy id and backfills the synthetic one
// otherwise.
func ensureRowID(item map[string]any, id string) {
	if v, ok := item["id"]; !ok || v == nil {
		item["id"] = id
	}
}

func (ex *exporter) patchSmelters() {
	_, preExisted := ex.ctx.original["cmtSmelters"]
	origRows := asSlice(ex.ctx.original["cmtSmelters"])
	outRows := asSlice(ex.out["cmtSmelters"])

	next := make([]any, 0, len(ex.data.SmelterList))
	for _, row := range ex.data.SmelterList {
		idx, known := ex.ctx.smelterIndexByID[row.ID]
		if !known {
			next = append(next, ex.newSmelterRow(row))
			continue
		}
		item := asMap(outRows[idx])
		orig := asMap(origRows[idx])
		if item == nil || orig == nil {
			continue
		}
		states := ex.ctx.smelterStates[idx]

		writeLegacyField(item, "metal", states, ex.labelForMineral(row.Metal))

		derivedLookup := firstNonEmpty(str(orig["smelterLookUp"]), str(orig["smelterName"]), str(orig["standardSmelterName"]))
		if row.SmelterLookup != derivedLookup {
			writeLegacyField(item, "smelterLookUp", states, row.SmelterLookup)
		}

		originalStandardName := str(orig["standardSmelterName"])
		derivedName := firstNonEmpty(originalStandardName, str(orig["smelterName"]))
		if row.SmelterName != derivedName {
			switch {
			case originalStandardName != "":
				writeLegacyField(item, "standardSmelterName", states, row.SmelterName)
			case states["smelterName"].WasNull && ex.ctx.smelterNameFallback[idx] != "" &&
				row.SmelterName == ex.ctx.smelterNameFallback[idx]:
				item["smelterName"] = nil
			default:
				writeLegacyField(item, "smelterName", states, row.SmelterName)
			}
		}

		writeLegacyField(item, "smelterCountry", states, row.SmelterCountry)

		derivedID := firstNonEmpty(toAnyString(orig["smelterNumber"]), toAnyString(orig["smelterId"]))
		if row.SmelterID != derivedID || row.SmelterIdentification != derivedID {
			nextNumber := row.SmelterIdentification
			if row.SmelterID != derivedID {
				nextNumber = row.SmelterID
			}
			target := "smelterNumber"
			if toAnyString(orig["smelterNumber"]) == "" && toAnyString(orig["smelterId"]) != "" {
				target = "smelterId"
			}
			writeLegacyField(item, target, states, nextNumber)
		}
		if row.SourceID != toAnyString(orig["smelterIdentification"]) {
			writeLegacyField(item, "smelterIdentification", states, row.SourceID)
		}

		writeLegacyField(item, "smelterStreet", states, row.SmelterStreet)
		writeLegacyField(item, "smelterCity", states, row.SmelterCity)
		writeLegacyField(item, "smelterProvince", states, row.SmelterState)
		writeLegacyField(item, "smelterContact", states, row.SmelterContactName)
		writeLegacyField(item, "smelterEmail", states, row.SmelterContactEmail)
		writeLegacyField(item, "suggest", states, row.ProposedNextSteps)
		writeLegacyField(item, "mineName", states, row.MineName)
		writeLegacyField(item, "mineCountry", states, row.MineCountry)

		if row.RecycledScrap != normalizeLegacyYesNoUnknown(orig["isRecycle"]) {
			if row.RecycledScrap == "" {
				writeLegacyField(item, "isRecycle", states, "")
			} else {
				item["isRecycle"] = toLegacyYesNoUnknown(row.RecycledScrap)
			}
		}

		writeLegacyField(item, "remark", states, row.Comments)
		ensureRowID(item, row.ID)
		next = append(next, item)
	}

	if preExisted || len(next) > 0 {
		ex.out["cmtSmelters"] = next
	}
}

func (ex *exporter) newSmelterRow(row formdata.SmelterRow) map[string]any {
	item := map[string]any{"id": row.ID}
	if row.Metal != "" {
		item["metal"] = ex.labelForMineral(row.Metal)
	}
	setIfNonEmpty(item, "smelterLookUp", row.SmelterLookup)
	setIfNonEmpty(item, "smelterName", row.SmelterName)
	if row.SmelterLookup != "" && row.SmelterName != "" {
		item["standardSmelterName"] = row.SmelterName
	}
	setIfNonEmpty(item, "smelterCountry", row.SmelterCountry)
	setIfNonEmpty(item, "smelterNumber", firstNonEmpty(row.SmelterIdentification, row.SmelterID))
	setIfNonEmpty(item, "smelterIdentification", row.SourceID)
	setIfNonEmpty(item, "smelterStreet", row.SmelterStreet)
	setIfNonEmpty(item, "smelterCity", row.SmelterCity)
	setIfNonEmpty(item, "smelterProvince", row.SmelterState)
	setIfNonEmpty(item, "smelterContact", row.SmelterContactName)
	setIfNonEmpty(item, "smelterEmail", row.SmelterContactEmail)
	setIfNonEmpty(item, "suggest", row.ProposedNextSteps)
	setIfNonEmpty(item, "mineName", row.MineName)
	setIfNonEmpty(item, "mineCountry", row.MineCountry)
	if row.RecycledScrap != "" {
		item["isRecycle"] = toLegacyYesNoUnknown(row.RecycledScrap)
	}
	setIfNonEmpty(item, "remark", row.Comments)
	return item
}

func (ex *exporter) patchMines() {
	_, preExisted := ex.ctx.original["minList"]
	outRows := asSlice(ex.out["minList"])

	next := make([]any, 0, len(ex.data.MineList))
	for _, row := range ex.data.MineList {
		idx, known := ex.ctx.mineIndexByID[row.ID]
		if !known {
			item := map[string]any{}
			if row.Metal != "" {
				item["metal"] = ex.labelForMineral(row.Metal)
			}
			setIfNonEmpty(item, "smelterName", row.SmelterName)
			setIfNonEmpty(item, "mineFacilityName", row.MineName)
			setIfNonEmpty(item, "mineFacilityCountry", row.MineCountry)
			setIfNonEmpty(item, "comments", row.Comments)
			next = append(next, item)
			continue
		}
		item := asMap(outRows[idx])
		if item == nil {
			continue
		}
		states := ex.ctx.mineStates[idx]
		writeLegacyField(item, "metal", states, ex.labelForMineral(row.Metal))
		writeLegacyField(item, "smelterName", states, row.SmelterName)
		writeLegacyField(item, "mineFacilityName", states, row.MineName)
		writeLegacyField(item, "mineFacilityCountry", states, row.MineCountry)
		writeLegacyField(item, "mineFacilityProvince", states, row.MineProvince)
		writeLegacyField(item, "mineFacilityStreet", states, row.MineStreet)
		writeLegacyField(item, "mineFacilityCity", states, row.MineCity)
		writeLegacyField(item, "mineFacilityContact", states, row.MineContactName)
		writeLegacyField(item, "mineFacilityEmail", states, row.MineContactEmail)
		writeLegacyField(item, "mineIdentificationNumber", states, row.MineID)
		writeLegacyField(item, "mineIdentification", states, row.MineIDSource)
		writeLegacyField(item, "proposedNextSteps", states, row.ProposedNextSteps)
		writeLegacyField(item, "comments", states, row.Comments)
		next = append(next, item)
	}

	if preExisted || len(next) > 0 {
		ex.out["minList"] = next
	}
}

func (ex *exporter) patchProducts() {
	_, preExisted := ex.ctx.original["cmtParts"]
	outRows := asSlice(ex.out["cmtParts"])

	// New rows reuse the alias choices of the first imported row so the
	// document stays internally consistent.
	defaultKeys := map[string]string{}
	for _, alias := range productFieldAliases {
		defaultKeys[alias.internal] = alias.keys[0]
	}
	if keys, ok := ex.ctx.productKeys[0]; ok {
		defaultKeys = keys
	}

	next := make([]any, 0, len(ex.data.ProductList))
	for _, row := range ex.data.ProductList {
		idx, known := ex.ctx.productIndexByID[row.ID]
		if !known {
			item := map[string]any{"id": row.ID}
			setIfNonEmpty(item, defaultKeys["productNumber"], row.ProductNumber)
			setIfNonEmpty(item, defaultKeys["productName"], row.ProductName)
			setIfNonEmpty(item, defaultKeys["requesterNumber"], row.RequesterNumber)
			setIfNonEmpty(item, defaultKeys["requesterName"], row.RequesterName)
			setIfNonEmpty(item, defaultKeys["comments"], row.Comments)
			next = append(next, item)
			continue
		}
		item := asMap(outRows[idx])
		if item == nil {
			continue
		}
		states := ex.ctx.productStates[idx]
		keys := ex.ctx.productKeys[idx]
		writeLegacyField(item, keys["productNumber"], states, row.ProductNumber)
		writeLegacyField(item, keys["productName"], states, row.ProductName)
		writeLegacyField(item, keys["requesterNumber"], states, row.RequesterNumber)
		writeLegacyField(item, keys["requesterName"], states, row.RequesterName)
		writeLegacyField(item, keys["comments"], states, row.Comments)
		next = append(next, item)
	}

	if preExisted || len(next) > 0 {
		ex.out["cmtParts"] = next
	}
}

func (ex *exporter) patchReasons() {
	_, preExisted := ex.ctx.original["amrtReasonList"]
	outRows := asSlice(ex.out["amrtReasonList"])

	next := make([]any, 0, len(ex.data.MineralsScope))
	for _, row := range ex.data.MineralsScope {
		idx, known := ex.ctx.reasonIndexByID[row.ID]
		if !known {
			item := map[string]any{"id": row.ID}
			if row.Mineral != "" {
				item["metal"] = ex.labelForMineral(row.Mineral)
			}
			setIfNonEmpty(item, "reason", row.Reason)
			next = append(next, item)
			continue
		}
		item := asMap(outRows[idx])
		if item == nil {
			continue
		}
		states := ex.ctx.reasonStates[idx]
		writeLegacyField(item, "metal", states, ex.labelForMineral(row.Mineral))
		writeLegacyField(item, "reason", states, row.Reason)
		ensureRowID(item, row.ID)
		next = append(next, item)
	}

	if preExisted || len(next) > 0 {
		ex.out["amrtReasonList"] = next
	}
}
