package term

// Aggregate 把 token 序列归并为“规范词 → 出现次数”。
//
// 规则：
//   - token 直接出现在词表中：计入该词
//   - token 是某个规范词的变体（termForms 中的词干/别名）：计入规范词
//   - 其余 token 不在词表内，贡献为零，直接丢弃
//
// 结果与 token 顺序无关。
func Aggregate(tokens []string, termForms map[string][]string, vocabulary []string) map[string]int {
	inVocabulary := make(map[string]struct{}, len(vocabulary))
	for _, v := range vocabulary {
		inVocabulary[v] = struct{}{}
	}

	// 变体 → 规范词 的反向索引
	canonical := make(map[string]string)
	for t, forms := range termForms {
		for _, form := range forms {
			canonical[form] = t
		}
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		if _, ok := inVocabulary[tok]; ok {
			counts[tok]++
			continue
		}
		if t, ok := canonical[tok]; ok {
			counts[t]++
		}
	}
	return counts
}
