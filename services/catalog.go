package services

// CategoryInfo pairs a category with its printed section label.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
}

// Categories lists every category in document display order.
var Categories = []CategoryInfo{
	{CategoryAudio, "音響系統"},
	{CategoryLighting, "燈光系統"},
	{CategoryLED, "LED系統"},
	{CategoryProjection, "投影系統"},
	{CategoryPower, "電力系統"},
	{CategoryStage, "舞台結構"},
	{CategoryCrew, "工作團隊"},
	{CategoryEffects, "特效"},
}

// CategoryLabel returns the display label, or the raw id for unknown categories.
func CategoryLabel(c Category) string {
	for _, info := range Categories {
		if info.ID == c {
			return info.Label
		}
	}
	return string(c)
}

// CatalogOption is a standard equipment line offered by the item picker.
type CatalogOption struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Price    float64  `json:"price"`
	Note     string   `json:"note"`
	SubItems []string `json:"subItems"`
}

// AccessorySuggestions are the quick-pick sub-item labels per category.
var AccessorySuggestions = map[Category][]string{
	CategoryAudio: {
		"XLR 訊號線 (2m)", "XLR 訊號線 (3m)", "XLR 訊號線 (10m)", "XLR 訊號線 (15m)",
		"MULTI 8CH (30m)", "MULTI 4CH (20m)",
		"樂器導線 phone (5m)", "樂器導線 phone (3m)",
		"音源線 6.3 對 3.5", "公對母延長線 (3m)",
		"麥架 (長)", "麥架 (桌架短)", "譜架", "喇叭架 (長)", "喇叭架 (短)",
		"DI Box (Behringer)", "3號電池 (AA)", "電源延長線 (排插)", "網路線 (50m)",
	},
	CategoryLighting: {
		"DMX 訊號線 (短)", "DMX 訊號線 (長)", "電源線 (PowerCon)",
		"燈鉤 (Clamp)", "安全索 (Safety Cable)", "色紙",
		"對講機", "手套",
	},
	CategoryLED: {
		"備品箱", "發送卡", "網路線", "電源線 (220V)",
		"HDMI 訊號線", "SDI 訊號線", "訊號放大器",
		"固定支架", "吊掛架",
	},
	CategoryProjection: {
		"HDMI 訊號線 (1.5m)", "HDMI 訊號線 (3m)", "HDMI 訊號線 (10m)",
		"SDI 訊號線", "轉接頭 (Type-C)", "轉接頭 (MiniDP)",
		"電源延長線", "筆電變壓器", "遙控器", "雷射筆電池",
		"投影機吊架", "訊號放大器",
	},
	CategoryPower: {
		"電源延長線 (30m)", "電源延長線 (50m)", "排插 (6孔)",
		"配電箱 (三相)", "配電箱 (單相)", "電纜線 (3.5mm²)",
		"接地線", "絕緣膠帶", "束線帶",
	},
	CategoryStage: {
		"螺絲組", "扳手組", "安全索 (Safety Cable)",
		"地毯 (黑色)", "地毯膠帶", "斜坡板",
		"護欄", "防滑墊", "圍裙 (Skirt)",
	},
	CategoryCrew: {
		"夜間進場", "前一天進場", "彩排費用", "超時費用", "交通費", "住宿費", "便當費",
	},
	CategoryEffects: {
		"煙油", "CO2 鋼瓶", "彩帶補充包", "泡泡液",
		"火焰燃料", "保險絲", "遙控器", "安全防護網",
	},
}

// PeriodPreset is a named, ready-made period-charge schedule.
type PeriodPreset struct {
	Label   string         `json:"label"`
	Charges []PeriodCharge `json:"charges"`
}

// PeriodPresets are the quick-select schedules. Charge ids are assigned when a
// preset is applied to a project.
var PeriodPresets = []PeriodPreset{
	{
		Label: "1天",
		Charges: []PeriodCharge{
			{Label: EventDayLabel, Type: ChargeRate, Value: 1.0},
		},
	},
	{
		Label: "2天(進+活)",
		Charges: []PeriodCharge{
			{Label: "進場日", Type: ChargeRate, Value: 0.85},
			{Label: EventDayLabel, Type: ChargeRate, Value: 1.0},
		},
	},
	{
		Label: "3天(進+活+撤)",
		Charges: []PeriodCharge{
			{Label: "進場日", Type: ChargeRate, Value: 0.85},
			{Label: EventDayLabel, Type: ChargeRate, Value: 1.0},
			{Label: "撤場日", Type: ChargeRate, Value: 0.5},
		},
	},
}

// FindPeriodPreset looks a preset up by label.
func FindPeriodPreset(label string) (PeriodPreset, bool) {
	for _, p := range PeriodPresets {
		if p.Label == label {
			return p, true
		}
	}
	return PeriodPreset{}, false
}

// DayLabels are the suggested period-charge labels.
var DayLabels = []string{
	EventDayLabel, "進場日", "撤場日", "彩排日", "夜間進場費", "前一天進場費", "超時費用",
}

// initialItems seed every new project.
var initialItems = []CatalogOption{
	{CategoryAudio, "基本音響系統", 1, "式", 15000, "Speakers + Console + Mics", []string{"電源線", "訊號線", "麥克風立架"}},
}
