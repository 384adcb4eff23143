package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/services"
)

// catalogDef is one standard equipment option offered by the item picker.
type catalogDef struct {
	category services.Category
	name     string
	quantity float64
	unit     string
	price    float64
	note     string
	subItems []string
}

// Seed inserts the standard equipment catalog when the equipment_catalog
// collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if the catalog already has rows ────────────
	catalogCol, err := app.FindCollectionByNameOrId("equipment_catalog")
	if err != nil {
		return fmt.Errorf("seed: could not find equipment_catalog collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query equipment_catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: equipment_catalog collection is empty – inserting standard equipment …")

	for i, d := range catalogDefs {
		subItems := d.subItems
		if subItems == nil {
			subItems = []string{}
		}
		rec := core.NewRecord(catalogCol)
		rec.Set("sort_order", i+1)
		rec.Set("category", string(d.category))
		rec.Set("name", d.name)
		rec.Set("quantity", d.quantity)
		rec.Set("unit", d.unit)
		rec.Set("price", d.price)
		rec.Set("note", d.note)
		rec.Set("sub_items", subItems)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save catalog option %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d catalog options\n", len(catalogDefs))
	return nil
}

// ── Standard equipment ───────────────────────────────────────────────────

var catalogDefs = []catalogDef{
	// --- 音響系統 ---
	{services.CategoryAudio, "數位混音控台", 1, "式", 4000, "Behringer X32 Compact", []string{"電源線", "變壓器"}},
	{services.CategoryAudio, "類比混音控台", 1, "式", 2000, "Yamaha MG16XU", []string{"電源線"}},
	{services.CategoryAudio, "主動式喇叭 12\"", 2, "顆", 2000, "QSC KS12.2 (庫存8顆)", []string{"電源線", "XLR 線"}},
	{services.CategoryAudio, "主動式喇叭 10\"", 2, "顆", 1500, "QSC KS10.2 (庫存2顆)", []string{"電源線", "XLR 線"}},
	{services.CategoryAudio, "主動式同軸喇叭 12\"", 2, "顆", 1500, "The box pro 同軸 (庫存6顆)", []string{"電源線", "XLR 線"}},
	{services.CategoryAudio, "超低音喇叭", 2, "顆", 3000, "QSC KS118 (庫存2顆)", []string{"電源線", "XLR 線"}},
	{services.CategoryAudio, "被動式喇叭 12\"", 2, "顆", 1200, "JBL STX800 (庫存4顆)", []string{"SpeakOn 喇叭線"}},
	{services.CategoryAudio, "小型監聽喇叭", 1, "顆", 800, "MACKIE SRM150", []string{"電源線"}},
	{services.CategoryAudio, "監聽喇叭", 1, "組", 3000, "Neumann KH80DSP", []string{"電源線", "XLR 線"}},
	{services.CategoryAudio, "無線手持麥克風", 4, "支", 1000, "MIPRO ACT-52H / ACT-700T", []string{"3號電池 x8", "麥克風夾"}},
	{services.CategoryAudio, "無線領夾麥克風", 4, "支", 1200, "MIPRO mu55ls + ACT-74", []string{"3號電池 x8", "領夾"}},
	{services.CategoryAudio, "無線耳掛麥克風", 4, "支", 1200, "MIPRO MU-55HNS + ACT-70H", []string{"3號電池 x8"}},
	{services.CategoryAudio, "軟管收音麥克風", 2, "支", 500, "MIPRO SM-32 / 6VA-5", nil},
	{services.CategoryAudio, "有線麥克風 (SM58)", 2, "支", 300, "SHURE SM58 (庫存5支)", []string{"麥克風夾", "XLR 線"}},
	{services.CategoryAudio, "有線麥克風 (SM57)", 2, "支", 300, "SHURE SM57 收音用 (庫存4支)", []string{"麥克風夾", "XLR 線"}},
	{services.CategoryAudio, "動圈式人聲麥克風", 4, "支", 500, "Telefunken TPA-2 (庫存8支)", []string{"麥克風夾"}},
	{services.CategoryAudio, "鼓組收音麥克風組", 1, "套", 3000, "SHURE PG56×3 + PG52 + PG81×2", []string{"鼓夾", "XLR 線", "麥架"}},
	{services.CategoryAudio, "入耳式監聽放大器", 1, "組", 1500, "the t.bone FREE2B", nil},
	{services.CategoryAudio, "DI Box", 2, "個", 300, "Behringer UltraDI D100/D120", nil},
	{services.CategoryAudio, "訊號轉換盒", 1, "個", 500, "Focusrite Scarlett 2i2 (庫存4個)", []string{"USB 線"}},
	{services.CategoryAudio, "金嗓點歌機", 1, "台", 2000, "CPX-900M1", []string{"遙控器", "電源線"}},
	{services.CategoryAudio, "直播控制器", 1, "組", 1500, "Elgato Stream Deck MK.2", []string{"USB 線"}},
	{services.CategoryAudio, "喇叭架 (長)", 2, "組", 300, "K&M (庫存4組)", nil},
	{services.CategoryAudio, "喇叭架 (短)", 2, "組", 200, "K&M (庫存8組)", nil},
	{services.CategoryAudio, "麥架 (長)", 2, "支", 150, "庫存6支", nil},
	{services.CategoryAudio, "麥架 (桌架短)", 2, "支", 100, "鐵板型 (庫存4支)", nil},
	{services.CategoryAudio, "譜架", 2, "支", 100, "庫存4支", nil},
	{services.CategoryAudio, "訊號線材與配件", 1, "批", 3000, "XLR / Phone / 電源 / 架子", nil},

	// --- 燈光系統 ---
	{services.CategoryLighting, "燈光控台", 1, "式", 10000, "Tiger Touch II", []string{"電源線", "工作燈", "防塵套"}},
	{services.CategoryLighting, "LED 搖頭燈 (1915)", 8, "顆", 800, "LED MOVING 1915 (庫存32顆)", []string{"電源線 (PowerCon)", "DMX 線", "燈鉤", "安全索"}},
	{services.CategoryLighting, "LED 搖頭燈 (1940)", 4, "顆", 1200, "LED MOVING 1940 (庫存4顆)", []string{"電源線 (PowerCon)", "DMX 線", "燈鉤", "安全索"}},
	{services.CategoryLighting, "光束搖頭燈 (Beam 280)", 4, "顆", 1500, "Beam Spot 280 (庫存4顆)", []string{"電源線 (PowerCon)", "DMX 線", "燈鉤", "安全索"}},
	{services.CategoryLighting, "LED 染色燈 (LED Par)", 12, "顆", 500, "LED PAR RGBW", []string{"電源線", "DMX 線", "燈鉤"}},
	{services.CategoryLighting, "LED 四眼觀眾燈", 4, "座", 1000, "LED四眼 (庫存8座)", []string{"電源線", "DMX 線"}},
	{services.CategoryLighting, "追蹤燈 (Follow Spot)", 2, "支", 3000, "Includes Operator Stand", []string{"腳架", "電源線", "色片"}},
	{services.CategoryLighting, "燈光線材與配電", 1, "批", 5000, "DMX / PowerCon / 配電", nil},

	// --- LED系統 ---
	{services.CategoryLED, "LED 電視牆 (P2.5)", 1, "式", 60000, "300x200cm", []string{"備品箱", "發送卡", "網路線"}},
	{services.CategoryLED, "LED 電視牆 (P3.9)", 1, "式", 45000, "400x300cm 戶外型", []string{"備品箱", "發送卡", "網路線"}},
	{services.CategoryLED, "液晶電視 (50\")", 2, "台", 3000, "外框 111×64.5cm / 螢幕 110.5×62.3cm / 厚 2.2cm", []string{"電源線", "遙控器", "立架配件包"}},
	{services.CategoryLED, "液晶電視 (65\")", 1, "台", 5000, "PHILIPS 外框 146×84.5cm / 螢幕 143×80.5cm / 厚 2.5cm", []string{"電源線", "遙控器", "立架配件包"}},
	{services.CategoryLED, "LED 發送處理器", 1, "台", 5000, "Novastar / Brompton", []string{"電源線", "網路線"}},

	// --- 投影系統 ---
	{services.CategoryProjection, "高流明雷射投影機", 1, "台", 25000, "15,000 Lumens Laser", []string{"電源線 (220V)", "遙控器", "鏡頭蓋"}},
	{services.CategoryProjection, "商務投影機", 1, "台", 5000, "5,000 Lumens", []string{"電源線", "HDMI 線", "遙控器"}},
	{services.CategoryProjection, "快速折疊幕 (150-200\")", 1, "式", 3000, "Front/Rear Projection", []string{"幕布 (前投)", "幕布 (背投)", "框架組", "腳架組"}},
	{services.CategoryProjection, "視訊導播控台 (Switcher)", 1, "式", 12000, "Roland V60 / V160HD", []string{"變壓器"}},
	{services.CategoryProjection, "4K 導播控台 (4K Switcher)", 1, "式", 20000, "Barco E2 / S3", []string{"電源線 x2"}},
	{services.CategoryProjection, "筆記型電腦 (Laptop)", 1, "台", 1500, "MacBook Pro / Windows", []string{"變壓器", "滑鼠", "轉接頭"}},
	{services.CategoryProjection, "簡報遙控器 (Clicker)", 1, "支", 500, "Logitech R-R0011 (庫存2個)", []string{"電池", "接收器"}},
	{services.CategoryProjection, "視訊線材 (Cabling)", 1, "批", 2000, "HDMI / SDI / Fiber", nil},

	// --- 電力系統 ---
	{services.CategoryPower, "三相配電箱 (Main)", 1, "式", 8000, "100A 三相主配電", []string{"電纜線", "接地線"}},
	{services.CategoryPower, "單相配電箱 (Sub)", 2, "組", 3000, "60A 單相子配電", []string{"電纜線"}},
	{services.CategoryPower, "電源延長線組 (30m)", 4, "條", 500, "3.5mm² 延長線", nil},
	{services.CategoryPower, "排插組 (Power Strip)", 6, "個", 200, "6孔排插", nil},
	{services.CategoryPower, "UPS 不斷電系統", 1, "台", 3000, "1500VA", []string{"電源線"}},
	{services.CategoryPower, "發電機 (Generator)", 1, "台", 15000, "60KW 靜音發電機", []string{"油料", "電纜線"}},

	// --- 舞台結構 ---
	{services.CategoryStage, "舞台板 (Stage Deck)", 20, "片", 800, "1.2m x 2.4m 標準舞台板", []string{"支撐腳 x4"}},
	{services.CategoryStage, "舞台支撐腳 (Legs)", 1, "組", 2000, "可調高度 40-100cm", nil},
	{services.CategoryStage, "桁架 (Truss)", 1, "組", 5000, "12\" Box Truss 套組", []string{"接頭", "插銷", "安全索"}},
	{services.CategoryStage, "護欄 (Guardrail)", 10, "支", 300, "1.2m 安全護欄", nil},
	{services.CategoryStage, "斜坡板 (Ramp)", 2, "組", 1500, "無障礙斜坡", []string{"防滑墊"}},
	{services.CategoryStage, "地毯 (Carpet)", 1, "式", 3000, "黑色地毯含鋪設", []string{"地毯膠帶"}},

	// --- 工作團隊 ---
	{services.CategoryCrew, "專案執行人員", 1, "人", 5000, "Project Manager", nil},
	{services.CategoryCrew, "音控工程師", 1, "人", 5000, "Audio Engineer", nil},
	{services.CategoryCrew, "視訊工程師", 1, "人", 5000, "Video Engineer", nil},
	{services.CategoryCrew, "燈控工程師", 1, "人", 5000, "Lighting Engineer", nil},
	{services.CategoryCrew, "硬體助理人員", 2, "人", 3000, "Stagehand / Assistant", nil},
	{services.CategoryCrew, "夜間進場費", 1, "式", 3000, "Night Move-in Fee", nil},
	{services.CategoryCrew, "前一日進場費", 1, "式", 5000, "Day-before Move-in Fee", nil},
	{services.CategoryCrew, "設備運輸費 (大車)", 1, "趟", 3500, "3.5T Truck", nil},
	{services.CategoryCrew, "設備運輸費 (小車)", 1, "趟", 1500, "Van", nil},

	// --- 特效 ---
	{services.CategoryEffects, "煙霧機 (Haze Machine)", 2, "台", 2000, "Unique 2.1 / DF-50", []string{"電源線", "煙油 (桶)"}},
	{services.CategoryEffects, "CO2 噴射機", 2, "台", 3000, "CO2 Jet", []string{"CO2 鋼瓶", "高壓管"}},
	{services.CategoryEffects, "火焰機 (Flame)", 2, "台", 5000, "DMX 控制火焰機", []string{"燃料", "安全防護網"}},
	{services.CategoryEffects, "彩帶機 (Confetti)", 2, "台", 2000, "電動彩帶發射器", []string{"彩帶補充包"}},
	{services.CategoryEffects, "泡泡機 (Bubble)", 2, "台", 1000, "大型泡泡機", []string{"泡泡液", "電源線"}},
	{services.CategoryEffects, "冷焰火 (Cold Spark)", 4, "台", 2500, "Ti Powder Spark Machine", []string{"鈦粉耗材", "電源線"}},
}
