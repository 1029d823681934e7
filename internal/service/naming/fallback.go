package naming

// fallbackEntry 备用名字条目
type fallbackEntry struct {
	GivenName string
	Meaning   string
	Wuxing    string
	Poetry    string
	Score     int
}

// fallbackTable 备用名字表（大模型不可用时使用）
var fallbackTable = []fallbackEntry{
	{GivenName: "诗涵", Meaning: "诗意盎然，涵养深厚", Wuxing: "金水", Score: 95},
	{GivenName: "梓轩", Meaning: "梓木成材，气宇轩昂", Wuxing: "木土", Score: 93},
	{GivenName: "雨萱", Meaning: "雨露滋润，萱草忘忧", Wuxing: "水木", Score: 92},
	{GivenName: "浩然", Meaning: "浩然正气，胸怀宽广", Wuxing: "水金", Score: 94},
	{GivenName: "婉清", Meaning: "温婉清雅，气质出众", Wuxing: "土水", Score: 91},
	{GivenName: "子涵", Meaning: "君子涵养，德才兼备", Wuxing: "水水", Score: 90},
	{GivenName: "思远", Meaning: "思虑深远，志向高远", Wuxing: "金土", Score: 92},
	{GivenName: "欣怡", Meaning: "欣欣向荣，怡然自得", Wuxing: "木土", Score: 89},
	{GivenName: "俊杰", Meaning: "才智过人，杰出非凡", Wuxing: "火木", Score: 93},
	{GivenName: "雅琪", Meaning: "高雅脱俗，美玉无瑕", Wuxing: "木木", Score: 91},
}

// fallbackNames 生成备用名字列表
// 请求数量超过表长时按固定顺序循环取用，保证返回数量恒等于 count
func fallbackNames(surname string, count int) []NameResult {
	results := make([]NameResult, 0, count)
	for i := 0; i < count; i++ {
		entry := fallbackTable[i%len(fallbackTable)]
		results = append(results, NameResult{
			Name:      surname + entry.GivenName,
			GivenName: entry.GivenName,
			Meaning:   entry.Meaning,
			Wuxing:    entry.Wuxing,
			Poetry:    entry.Poetry,
			Score:     entry.Score,
		})
	}
	return results
}
