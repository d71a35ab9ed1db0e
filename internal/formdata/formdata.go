package formdata

// SmelterRow is one row of the smelter table. Optional columns are
// omitted from JSON when empty so snapshots of templates without those
// columns stay minimal.
type SmelterRow struct {
	ID                    string `json:"id"`
	Metal                 string `json:"metal"`
	SmelterLookup         string `json:"smelterLookup"`
	SmelterName           string `json:"smelterName"`
	SmelterCountry        string `json:"smelterCountry"`
	CombinedMetal         string `json:"combinedMetal,omitempty"`
	CombinedSmelter       string `json:"combinedSmelter,omitempty"`
	SmelterID             string `json:"smelterId,omitempty"`
	SmelterIdentification string `json:"smelterIdentification,omitempty"`
	SourceID              string `json:"sourceId,omitempty"`
	SmelterStreet         string `json:"smelterStreet,omitempty"`
	SmelterCity           string `json:"smelterCity,omitempty"`
	SmelterState          string `json:"smelterState,omitempty"`
	SmelterContactName    string `json:"smelterContactName,omitempty"`
	SmelterContactEmail   string `json:"smelterContactEmail,omitempty"`
	ProposedNextSteps     string `json:"proposedNextSteps,omitempty"`
	MineName              string `json:"mineName,omitempty"`
	MineCountry           string `json:"mineCountry,omitempty"`
	RecycledScrap         string `json:"recycledScrap,omitempty"`
	Comments              string `json:"comments,omitempty"`
}

// MineRow is one row of the mine table.
type MineRow struct {
	ID                string `json:"id"`
	Metal             string `json:"metal"`
	SmelterName       string `json:"smelterName"`
	MineName          string `json:"mineName"`
	MineCountry       string `json:"mineCountry"`
	MineID            string `json:"mineId,omitempty"`
	MineIDSource      string `json:"mineIdSource,omitempty"`
	MineStreet        string `json:"mineStreet,omitempty"`
	MineCity          string `json:"mineCity,omitempty"`
	MineProvince      string `json:"mineProvince"`
	MineDistrict      string `json:"mineDistrict"`
	MineContactName   string `json:"mineContactName,omitempty"`
	MineContactEmail  string `json:"mineContactEmail,omitempty"`
	ProposedNextSteps string `json:"proposedNextSteps,omitempty"`
	Comments          string `json:"comments"`
}

// ProductRow is one row of the product table. Requester columns only
// apply to templates that ship them.
type ProductRow struct {
	ID              string `json:"id"`
	ProductNumber   string `json:"productNumber"`
	ProductName     string `json:"productName"`
	RequesterNumber string `json:"requesterNumber,omitempty"`
	RequesterName   string `json:"requesterName,omitempty"`
	Comments        string `json:"comments"`
}

// MineralsScopeRow is one declared mineral with its inclusion reason
// (AMRT only).
type MineralsScopeRow struct {
	ID      string `json:"id"`
	Mineral string `json:"mineral"`
	Reason  string `json:"reason"`
}

// FormData is the complete state of a declaration form.
type FormData struct {
	CompanyInfo      map[string]string  `json:"companyInfo"`
	SelectedMinerals []string           `json:"selectedMinerals"`
	CustomMinerals   []string           `json:"customMinerals"`
	Questions        map[string]Answer  `json:"questions"`
	QuestionComments map[string]Answer  `json:"questionComments"`
	CompanyQuestions map[string]Answer  `json:"companyQuestions"`
	MineralsScope    []MineralsScopeRow `json:"mineralsScope"`
	SmelterList      []SmelterRow       `json:"smelterList"`
	MineList         []MineRow          `json:"mineList"`
	ProductList      []ProductRow       `json:"productList"`
}
