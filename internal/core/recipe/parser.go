package recipe

import "strings"

// Block 從生成文字中解析出的單一食譜區塊
type Block struct {
	Number       string
	Name         string
	CookTime     string
	Difficulty   string
	ImageKeyword string
}

// 生成回應中每行的固定標籤，依序出現
const (
	labelNumber     = "Recipe# "
	labelName       = "Recipe Name: "
	labelCookTime   = "Time to Cook: "
	labelDifficulty = "Difficulty: "
	labelKeyword    = "Image Keyword: "
)

// ParseBlocks 解析生成模型輸出的半結構化食譜列表
// 區塊之間以空行分隔，每個區塊依序為五行帶標籤內容：
// 編號、名稱、烹飪時間、難度、圖片關鍵字
// 不足五行的區塊直接丟棄，不產生部分紀錄
func ParseBlocks(text string) []Block {
	blocks := strings.Split(strings.TrimSpace(text), "\n\n")
	result := make([]Block, 0, len(blocks))

	for _, raw := range blocks {
		lines := strings.Split(strings.TrimSpace(raw), "\n")
		if len(lines) < 5 {
			continue
		}

		result = append(result, Block{
			Number:       stripLabel(lines[0], labelNumber),
			Name:         stripLabel(lines[1], labelName),
			CookTime:     stripLabel(lines[2], labelCookTime),
			Difficulty:   stripLabel(lines[3], labelDifficulty),
			ImageKeyword: stripLabel(lines[4], labelKeyword),
		})
	}

	return result
}

// stripLabel 移除行首標籤並修剪空白，解析是位置式的，不容忍標籤順序調換
func stripLabel(line, label string) string {
	return strings.TrimSpace(strings.Replace(line, label, "", 1))
}
