package completion

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// 模型经常无视指令裹上代码块或 XML 前言，返回结果一律先清洗再使用。
// 清洗失败产出安全的空值，绝不向上层抛格式错误。

var (
	codeFenceRe = regexp.MustCompile("```[a-zA-Z]*")
	xmlDeclRe   = regexp.MustCompile(`(?s)<\?xml.*?\?>`)
	doctypeRe   = regexp.MustCompile(`(?is)<!DOCTYPE.*?>`)
)

// stripCodeFences 去除 markdown 代码块标记
func stripCodeFences(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}

// extractJSONArray 从模型输出中分离出第一个 JSON 字符串数组
// 解析失败时先尝试修复 JSON，仍失败则返回空列表
func extractJSONArray(s string) []string {
	cleaned := stripCodeFences(s)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	if cleaned == "" {
		return []string{}
	}

	raw, ok := parseJSONArray(cleaned)
	if !ok {
		repaired, err := jsonrepair.JSONRepair(cleaned)
		if err != nil {
			return []string{}
		}
		if raw, ok = parseJSONArray(repaired); !ok {
			return []string{}
		}
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, strings.TrimSpace(fmt.Sprint(v)))
	}
	return out
}

func parseJSONArray(s string) ([]interface{}, bool) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	return raw, true
}

// cleanIconName 清洗图标名并校验其在允许集合中
// 列表之外的名字按软失败处理，返回空串
func cleanIconName(s string, allowed []string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.NewReplacer("'", "", "\"", "", "`", "", ".", "", "```", "", "\n", "").Replace(cleaned)
	if fields := strings.Fields(cleaned); len(fields) > 0 {
		cleaned = fields[0]
	} else {
		return ""
	}

	for _, name := range allowed {
		if strings.EqualFold(name, cleaned) {
			return name
		}
	}
	return ""
}

// extractSVG 从模型输出中分离出格式正确的 <svg> 片段
// 只剩裸图形元素时补一层标准外壳，无法修复则返回空串
func extractSVG(s string) string {
	svg := stripCodeFences(s)
	svg = xmlDeclRe.ReplaceAllString(svg, "")
	svg = doctypeRe.ReplaceAllString(svg, "")
	svg = strings.TrimSpace(svg)

	start := strings.Index(svg, "<svg")
	end := strings.LastIndex(svg, "</svg>")
	if start != -1 && end != -1 && end > start {
		svg = svg[start : end+len("</svg>")]
	} else if strings.Contains(svg, "path") || strings.Contains(svg, "circle") || strings.Contains(svg, "rect") {
		if !strings.HasPrefix(svg, "<svg") {
			svg = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">` + svg + `</svg>`
		}
	} else {
		return ""
	}

	if !isWellFormedXML(svg) {
		return ""
	}
	return svg
}

func isWellFormedXML(s string) bool {
	decoder := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
	}
}
