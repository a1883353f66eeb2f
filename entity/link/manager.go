package link

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/entity"
	"golang.org/x/exp/slices"
)

// LinkManager Link管理器
// 功能：管理路网中所有Link的静态属性，提供按ID查找的功能
type LinkManager struct {
	data map[string]entity.Link
	ids  []string // 升序
}

// NewManager 创建Link管理器实例
func NewManager() *LinkManager {
	return &LinkManager{
		data: make(map[string]entity.Link),
		ids:  make([]string, 0),
	}
}

// Init 初始化所有Link
// 功能：建立ID到Link的映射关系
// 参数：links-路网中的Link列表
// 返回：存在重复ID时返回错误
func (m *LinkManager) Init(links []entity.Link) error {
	m.data = lo.SliceToMap(links, func(l entity.Link) (string, entity.Link) {
		return l.ID, l
	})
	if len(m.data) != len(links) {
		dup := lo.FindDuplicatesBy(links, func(l entity.Link) string { return l.ID })
		return fmt.Errorf("links have duplicated ids %v, please check data", lo.Map(dup, func(l entity.Link, _ int) string { return l.ID }))
	}
	m.ids = lo.Keys(m.data)
	slices.Sort(m.ids)
	log.Infof("Link: %v", len(m.ids))
	return nil
}

// GetOrError 根据ID获取Link（带错误处理）
func (m *LinkManager) GetOrError(id string) (entity.Link, error) {
	if l, ok := m.data[id]; !ok {
		return entity.Link{}, fmt.Errorf("%w: no id %s in link data", entity.ErrUnknownEntity, id)
	} else {
		return l, nil
	}
}

// IDs 所有Link ID（升序）
func (m *LinkManager) IDs() []string {
	return m.ids
}
