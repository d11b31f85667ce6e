// Package term 提供文本/条目字段的分词与去重计数。
//
// 分词必须与训练管线逐位一致：模型精度依赖于预测期与训练期产生完全相同的 token 序列，
// 因此这里的边界规则不做任何“修正”。
package term

import (
	"regexp"
	"strings"
)

// termPattern 以词边界或下划线为界提取 token，取中间分组。
// 下划线按 \w 规则属于单词字符，作为显式分隔符列出。
var termPattern = regexp.MustCompile(`(\b|_)([^_\s]+?)(\b|_)`)

// ParseTerms 把自由文本切成 token 序列。
// caseSensitive 为 false 时统一转小写；nil/空输入返回空序列。
// 纯函数，无副作用，可重入。
func ParseTerms(text string, caseSensitive bool) []string {
	if text == "" {
		return nil
	}
	matches := termPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		t := m[2]
		if !caseSensitive {
			t = strings.ToLower(t)
		}
		terms = append(terms, t)
	}
	return terms
}

// SplitItems 按字段自定义的分隔符模式切分 items 字段的原始值。
// separator 为空时按单个空格切分；两侧空白被剔除，空条目被丢弃。
func SplitItems(text, separator string) []string {
	if text == "" {
		return nil
	}
	if separator == "" {
		separator = " "
	}
	sep, err := regexp.Compile(separator)
	if err != nil {
		// 非法分隔符退化为字面量切分，与训练端对非法正则的宽容行为一致
		return filterEmpty(strings.Split(text, separator))
	}
	return filterEmpty(sep.Split(text, -1))
}

func filterEmpty(parts []string) []string {
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}
