// Package ecs 提供覆盖层使用的最小实体-组件存储
//
// 实体只是一个 ID，组件按具体类型存放。查询结果按创建顺序返回，
// 渲染系统依赖这一点保证后生成的粒子画在上面。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
// 非并发安全，只在主循环中访问
type EntityManager struct {
	nextID     EntityID
	components map[EntityID]map[reflect.Type]any
	// 延迟删除的实体，RemoveMarkedEntities 时统一清理
	marked []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.marked = append(em.marked, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.marked {
		delete(em.components, id)
	}
	em.marked = em.marked[:0]
}

// RemoveEntity 立即删除实体，返回实体删除前是否存在
func (em *EntityManager) RemoveEntity(id EntityID) bool {
	if _, ok := em.components[id]; !ok {
		return false
	}
	delete(em.components, id)
	return true
}

// Exists 检查实体是否存在
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回存活实体数量（含已标记未清理的实体）
func (em *EntityManager) Count() int {
	return len(em.components)
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if comps, ok := em.components[id]; ok {
		comps[reflect.TypeOf(component)] = component
	}
}

func (em *EntityManager) lookup(id EntityID, t reflect.Type) (any, bool) {
	comps, ok := em.components[id]
	if !ok {
		return nil, false
	}
	c, ok := comps[t]
	return c, ok
}

// query 返回拥有全部指定类型组件的实体，按 ID 升序
func (em *EntityManager) query(types ...reflect.Type) []EntityID {
	var result []EntityID
outer:
	for id, comps := range em.components {
		for _, t := range types {
			if _, ok := comps[t]; !ok {
				continue outer
			}
		}
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 获取实体的 T 类型组件
//
// 用法: sp, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	c, ok := em.lookup(id, typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.lookup(id, typeOf[T]())
	return ok
}

// GetEntitiesWith1 查询拥有组件 A 的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.query(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.query(typeOf[A](), typeOf[B]())
}
