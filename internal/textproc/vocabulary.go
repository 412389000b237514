package textproc

// ForbiddenWords lists terms that marketplace review commonly rejects,
// grouped loosely by category. Matching is plain substring containment
// without word-boundary analysis, so substrings of longer legitimate words
// can match too; callers should treat results as advisory.
var ForbiddenWords = []string{
	// absolute claims
	"最好", "最佳", "最优", "第一", "唯一", "独家", "全球领先", "世界第一",
	"国家级", "最高级", "最低价", "史上最低", "前无古人", "绝无仅有",

	// false efficacy
	"包治", "根治", "药到病除", "立竿见影", "一次见效", "永久有效",
	"100%有效", "绝对", "肯定", "保证", "承诺", "无效退款",

	// time pressure
	"限时", "秒杀", "今日特价", "最后一天", "仅此一次", "错过不再",

	// exaggerated effect
	"神奇", "奇迹", "秘方", "祖传", "御用", "宫廷", "太医",
	"名医", "专家推荐", "医生推荐", "权威认证",

	// financial gain
	"暴富", "一夜暴富", "轻松赚钱", "躺赚", "日赚", "月入",
	"稳赚不赔", "零风险", "高收益", "包赚", "必赚",
}

// Replacements maps a forbidden term to a softer compliant synonym. Terms
// absent from this map have no safe substitution and are only flagged.
var Replacements = map[string]string{
	"最好":     "优质",
	"最佳":     "优秀",
	"第一":     "领先",
	"唯一":     "独特",
	"包治":     "改善",
	"根治":     "缓解",
	"100%有效": "效果显著",
	"绝对":     "相对",
	"保证":     "力求",
	"限时":     "特惠",
	"秒杀":     "优惠",
	"暴富":     "增收",
	"躺赚":     "收益",
}

// ReviseSuggestion is returned for matched terms without a mapped synonym.
const ReviseSuggestion = "请修改此词汇"

var stopwords = map[string]struct{}{
	"的": {}, "了": {}, "在": {}, "是": {}, "我": {}, "有": {}, "和": {},
	"就": {}, "不": {}, "人": {}, "都": {}, "一": {}, "一个": {}, "上": {},
	"也": {}, "很": {}, "到": {}, "说": {}, "要": {}, "去": {}, "你": {},
	"会": {}, "着": {}, "没有": {}, "看": {}, "好": {}, "自己": {},
	"这": {}, "那": {}, "与": {}, "或": {}, "但": {}, "及": {}, "以": {},
	"为": {}, "等": {},
}

// impactVerbs mark sentences that read as benefit statements.
var impactVerbs = []string{"提升", "增加", "减少", "改善", "优化", "节省", "获得"}
