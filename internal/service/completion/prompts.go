package completion

import (
	"encoding/json"
	"fmt"
	"strings"
)

const summarySystemInstruction = "你是一个专业的个人博客编辑助手。请根据用户提供的 Markdown 文章内容，生成一段简洁、优雅、有吸引力的中文摘要（Summary）。要求：\n" +
	"1. 字数控制在 60-120 字之间。\n" +
	"2. 语气平和、知性、高级，符合个人博客的调性。\n" +
	"3. 直接输出摘要内容，不要包含“好的”、“这是摘要”等任何开场白或结束语。"

const svgSystemInstruction = "你是一个 SVG 代码生成器。请根据项目描述，生成一个现代、简约、Outline 风格的 SVG 图标代码。\n\n" +
	"技术约束：\n" +
	"1. 必须包含 viewBox=\"0 0 24 24\"。\n" +
	"2. 必须设置 stroke=\"currentColor\", fill=\"none\", stroke-width=\"2\", stroke-linecap=\"round\", stroke-linejoin=\"round\"。\n" +
	"3. 仅返回 <svg>...</svg> 标签及其内容。\n" +
	"4. 严禁包含 <?xml ...?> 声明或 <!DOCTYPE ...>。\n" +
	"5. 严禁使用 markdown 代码块标记（如 ```xml 或 ```svg）。不要有任何文字解释。\n" +
	"6. 确保代码是有效的 SVG，可以直接嵌入 HTML。"

// tagsSystemInstruction 生成标签的系统指令
// 已有标签时只补充一个并要求不重复
func tagsSystemInstruction(existing []string) string {
	count := 2
	dedupe := ""
	if len(existing) > 0 {
		count = 1
		js, _ := json.Marshal(existing)
		dedupe = fmt.Sprintf("现有标签为：%s，请不要重复。\n", js)
	}
	return fmt.Sprintf("你是一个专业的博客标签生成器。\n"+
		"请根据文章标题和内容，生成 %d 个最相关的技术或主题标签。\n%s"+
		"标签应简洁精准（例如：\"React\", \"Web Design\", \"Life\"）。\n"+
		"必须只返回一个纯 JSON 字符串数组，例如：[\"Tag1\", \"Tag2\"]。\n"+
		"不要返回任何 markdown 格式（如 ```json），不要有任何解释文字。", count, dedupe)
}

// iconSystemInstruction 图标推荐的系统指令
func iconSystemInstruction(available []string) string {
	return fmt.Sprintf("你是一个UI设计师。请从我提供的【图标列表】中，严格选择一个最能代表用户项目名称和描述的图标名称。\n\n"+
		"【图标列表】：\n%s\n\n"+
		"重要规则：\n"+
		"1. 你必须只输出列表中的某一个单词。\n"+
		"2. 严禁编造列表中不存在的单词。\n"+
		"3. 严禁输出任何标点符号、Markdown标记或解释性文字。\n"+
		"4. 如果没有完美匹配，请选择最接近的通用图标（如 Globe, Layout, Box, Star）。\n"+
		"5. 直接输出单词本身。", strings.Join(available, ","))
}

func tagsUserPrompt(title, content string) string {
	excerpt := content
	if runes := []rune(excerpt); len(runes) > 500 {
		excerpt = string(runes[:500])
	}
	return fmt.Sprintf("标题：%s\n内容摘要：%s", title, excerpt)
}

func iconUserPrompt(title, description string) string {
	return fmt.Sprintf("项目名称：%s\n描述：%s", title, description)
}

func svgUserPrompt(title, description string) string {
	return fmt.Sprintf("项目名称：%s\n描述：%s\n设计要求：抽象、极简、高科技感。", title, description)
}
