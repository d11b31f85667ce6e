package core

// CategoryProbability 是分布中的一项：类别与归一化后的概率。
type CategoryProbability struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// Prediction 是一次预测的结果：最优类别、其概率、以及完整的有序分布。
// Distribution 按概率降序排列；概率完全相等时按目标字段词表顺序升序，保证输出确定。
type Prediction struct {
	Prediction   string                `json:"prediction"`
	Probability  float64               `json:"probability"`
	Distribution []CategoryProbability `json:"distribution"`
}
