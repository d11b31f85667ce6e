package feast

import (
	"context"
	"fmt"
	"strings"
)

// RowProvider 按实体 ID 从 Feast 取回一行预测输入。
//
// FieldRefs 把模型字段名映射到特征引用（"feature_view:feature"）：
// 返回的行以模型字段名为 key，可直接作为 Predict 的输入。
type RowProvider struct {
	Client Client

	// FieldRefs：模型字段名 → Feast 特征引用
	FieldRefs map[string]string

	// Project 项目名称（可选）
	Project string
}

// Row 取回单个实体的输入行。特征库中缺失的特征不出现在结果里，
// 由评估核心按缺失语义处理。
func (p *RowProvider) Row(ctx context.Context, entity map[string]any) (map[string]any, error) {
	rows, err := p.Rows(ctx, []map[string]any{entity})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// Rows 批量取回多个实体的输入行，与入参同序。
func (p *RowProvider) Rows(ctx context.Context, entities []map[string]any) ([]map[string]any, error) {
	if len(p.FieldRefs) == 0 {
		return nil, fmt.Errorf("feast: field refs are required")
	}

	refs := make([]string, 0, len(p.FieldRefs))
	fieldByRef := make(map[string]string, len(p.FieldRefs))
	for field, ref := range p.FieldRefs {
		refs = append(refs, ref)
		fieldByRef[ref] = field
		// 响应里的特征名可能不带 feature_view 前缀
		if i := strings.LastIndex(ref, ":"); i >= 0 {
			fieldByRef[ref[i+1:]] = field
		}
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   refs,
		EntityRows: entities,
		Project:    p.Project,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, len(resp.Rows))
	for i, values := range resp.Rows {
		row := make(map[string]any, len(values))
		for name, value := range values {
			if field, ok := fieldByRef[name]; ok {
				row[field] = value
			}
		}
		rows[i] = row
	}
	return rows, nil
}
