package core

// OpType 是字段的操作类型，决定该字段如何编码进系数向量。
type OpType string

const (
	OpTypeNumeric     OpType = "numeric"     // 数值字段：系数长度 1（启用 missing_numerics 时为 2）
	OpTypeCategorical OpType = "categorical" // 类别字段：one-hot 或自定义 field coding
	OpTypeText        OpType = "text"        // 文本字段：按 tag cloud 词表 one-hot
	OpTypeItems       OpType = "items"       // 条目字段：按 items 词表 one-hot
)

// Token mode 常量：文本字段分词时考虑单个 token、完整串、或两者。
const (
	TokenModeTokens    = "tokens_only"
	TokenModeFullTerms = "full_terms_only"
	TokenModeAll       = "all"
)

// TermAnalysis 是文本字段的分词设置（训练期固定，预测期必须逐位一致）。
type TermAnalysis struct {
	CaseSensitive bool
	TokenMode     string // tokens_only / full_terms_only / all
}

// ItemAnalysis 是 items 字段的切分设置。
type ItemAnalysis struct {
	Separator string // 为空时按单个空格切分
}

// Field 是模型字段的元信息与词表。
//
// Vocabulary 的顺序即训练期的顺序，是 one-hot 系数子向量的唯一位置索引来源，
// 构建完成后不可变。
type Field struct {
	ID           string
	Name         string
	OpType       OpType
	ColumnNumber int

	// Vocabulary 按 optype 取自 categories / tag_cloud / items，保持源顺序
	Vocabulary []string

	// TermForms 是规范词到其变体（词干等）的映射，仅文本字段使用
	TermForms map[string][]string

	TermAnalysis TermAnalysis
	ItemAnalysis ItemAnalysis
}

// FieldResolver 按字段 ID 或字段名解析字段。
//
// 模型 JSON 中 ID 与名字都可能被用作 key（输入行、field_codings、objective），
// 这里把鸭子类型的双向查找收敛为一个构建一次、只读使用的映射。
type FieldResolver struct {
	byID     map[string]*Field
	idByName map[string]string
}

// NewFieldResolver 构建双向映射。同名字段以先出现者为准。
func NewFieldResolver(fields map[string]*Field) *FieldResolver {
	r := &FieldResolver{
		byID:     make(map[string]*Field, len(fields)),
		idByName: make(map[string]string, len(fields)),
	}
	for id, f := range fields {
		r.byID[id] = f
		if _, ok := r.idByName[f.Name]; !ok {
			r.idByName[f.Name] = id
		}
	}
	return r
}

// Resolve 把 ID 或名字解析为字段 ID。
func (r *FieldResolver) Resolve(key string) (string, bool) {
	if _, ok := r.byID[key]; ok {
		return key, true
	}
	id, ok := r.idByName[key]
	return id, ok
}

// Field 按 ID 或名字取字段。
func (r *FieldResolver) Field(key string) (*Field, bool) {
	id, ok := r.Resolve(key)
	if !ok {
		return nil, false
	}
	f, ok := r.byID[id]
	return f, ok
}
