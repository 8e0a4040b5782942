package usecase

// Keyword tables drive the rule-first classification. Vietnamese entries are
// diacritic-stripped because matching runs on the normalized text variants.
var (
	// Verbs matched on word boundaries so "mo" cannot fire inside "mot".
	onVerbs  = []string{"bat", "mo", "khoi dong", "turn on", "switch on", "open", "enable", "start"}
	offVerbs = []string{"tat", "dong", "ngat", "turn off", "switch off", "close", "disable", "stop"}

	deviceKeywords = []string{
		"den", "bong den", "may bom", "bom", "quat", "thiet bi",
		"light", "lamp", "led", "pump", "fan", "device",
	}

	sensorKeywords = []string{
		"nhiet do", "do am", "do am dat", "muc nuoc", "luong mua", "anh sang",
		"cam bien", "trang thai", "temperature", "humidity", "soil",
		"water level", "rainfall", "sensor", "status",
	}

	infoKeywords = []string{
		"la gi", "la sao", "nghia la", "huong dan", "cach", "tai sao", "vi sao",
		"tan suat", "bao lau", "gioi thieu", "he thong",
		"what is", "what are", "how do", "how often", "why", "explain", "guide",
	}

	// deviceStatusKeywords mark a bare device-status question when no sensor
	// target is named.
	deviceStatusKeywords = []string{"thiet bi", "device"}

	connectorKeywords = []string{" va ", " and ", ",", " roi ", " cung ", " then "}

	// cadenceKeywords force the system-operation topic regardless of what the
	// classifier says.
	cadenceKeywords = []string{
		"tan suat", "bao lau mot lan", "chu ky", "dinh ky", "lich do",
		"how often", "frequency", "interval", "cadence",
	}
)

// topicSystemOperation must exist as a category in the topic document; the
// cadence keywords above route straight to it.
const topicSystemOperation = "van_hanh_he_thong"

// failureMarkers are scanned (on normalized text) in first-pass replies to
// decide whether to escalate to the generative model.
var failureMarkers = []string{
	"khong tim thay du lieu", "khong co du lieu", "khong the tra loi",
	"vui long noi ro", "vui long thu lai",
	"no data found", "could not answer", "please clarify",
}

const classificationConfidenceFloor = 0.4

const promptClassifyTopic = `Bạn là bộ phân loại câu hỏi cho hệ thống SmartFarm.
Các chủ đề hợp lệ: %s

Câu hỏi của người dùng: "%s"

Chỉ trả về JSON đúng định dạng sau, không thêm chữ nào khác:
{"category": "<tên chủ đề hoặc unknown>", "confidence": <số từ 0 đến 1>, "reason": "<lý do ngắn>"}`

const promptGroundedAnswer = `Bạn là trợ lý SmartFarm. Trả lời câu hỏi của người dùng CHỈ dựa trên các thông tin dưới đây, không thêm kiến thức bên ngoài. Trả lời ngắn gọn, thân thiện, cùng ngôn ngữ với câu hỏi.

Thông tin:
%s

Câu hỏi: "%s"`

const promptParseCommands = `Bạn là bộ phân tích lệnh điều khiển thiết bị cho hệ thống SmartFarm.
Danh sách thiết bị (id | tên | bí danh):
%s

Câu lệnh của người dùng: "%s"

Hãy xác định các thiết bị cần điều khiển và hành động (on/off). Chỉ trả về JSON đúng định dạng sau, không thêm chữ nào khác:
{"commands": [{"target": "<id hoặc bí danh thiết bị>", "action": "on|off"}]}`

const promptEscalate = `Bạn là trợ lý SmartFarm cho một trang trại IoT. Người dùng có thể: hỏi giá trị cảm biến (nhiệt độ, độ ẩm, độ ẩm đất, mực nước, lượng mưa), điều khiển thiết bị (bật/tắt đèn, máy bơm), hoặc hỏi thông tin về hệ thống. Câu trả lời tự động trước đó chưa thỏa đáng.

Hãy đọc lại tin nhắn sau và trả lời một cách hữu ích nhất, cùng ngôn ngữ với người dùng. Nếu không chắc người dùng muốn gì, hãy hỏi lại một cách lịch sự.

Tin nhắn: "%s"`

const promptFreeForm = `Bạn là trợ lý SmartFarm thân thiện cho một trang trại IoT. Trả lời ngắn gọn, hữu ích, cùng ngôn ngữ với người dùng.

Tin nhắn: "%s"`

const promptSensorContext = `

Dữ liệu cảm biến hiện tại (để tham khảo khi trả lời):
%s`
