// Package overlay 提供所有附着实例共享的全视口覆盖层
//
// 覆盖层不可交互、始终绘制在最上层。每个粒子的视觉元素是覆盖层
// EntityManager 中的一个实体（SpriteComponent + TransformComponent）。
// 覆盖层的生命周期由 Registry 的引用计数决定。
package overlay

import (
	"github.com/decker502/coolmode/pkg/components"
	"github.com/decker502/coolmode/pkg/ecs"
)

// VisualID 覆盖层中视觉元素的句柄
type VisualID = ecs.EntityID

// Surface 共享覆盖层
type Surface struct {
	em *ecs.EntityManager
}

func newSurface() *Surface {
	return &Surface{em: ecs.NewEntityManager()}
}

// EntityManager 供渲染系统查询视觉元素
func (s *Surface) EntityManager() *ecs.EntityManager {
	return s.em
}

// Add 添加一个视觉元素，返回句柄
func (s *Surface) Add(url string, x, y, size float64) VisualID {
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &components.SpriteComponent{URL: url, Size: size})
	s.em.AddComponent(id, &components.TransformComponent{X: x, Y: y})
	return id
}

// Move 更新视觉元素的位置与旋转
func (s *Surface) Move(id VisualID, x, y, rotationDeg float64) {
	tf, ok := ecs.GetComponent[*components.TransformComponent](s.em, id)
	if !ok {
		return
	}
	tf.X = x
	tf.Y = y
	tf.Rotation = rotationDeg
}

// Remove 删除视觉元素；返回元素删除前是否存在
func (s *Surface) Remove(id VisualID) bool {
	return s.em.RemoveEntity(id)
}

// Len 返回视觉元素数量
func (s *Surface) Len() int {
	return s.em.Count()
}

// clear 覆盖层销毁时清空所有残留元素
func (s *Surface) clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.SpriteComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()
}
