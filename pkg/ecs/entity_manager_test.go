package ecs

import (
	"slices"
	"testing"
)

type visual struct{ URL string }
type position struct{ X, Y float64 }

// TestCreateEntity 测试 ID 从 1 开始递增
func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	a, b := em.CreateEntity(), em.CreateEntity()
	if a != 1 || b != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a, b)
	}
	if em.Count() != 2 || !em.Exists(a) || em.Exists(0) {
		t.Errorf("Count=%d Exists(a)=%v Exists(0)=%v", em.Count(), em.Exists(a), em.Exists(0))
	}
}

func TestComponents(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &visual{URL: "builtin:star"})
	em.AddComponent(id, &position{X: 3})

	v, ok := GetComponent[*visual](em, id)
	if !ok || v.URL != "builtin:star" {
		t.Fatalf("GetComponent[*visual] = %v, %v", v, ok)
	}

	// 指针组件可以原地修改
	p, _ := GetComponent[*position](em, id)
	p.Y = 9
	if p2, _ := GetComponent[*position](em, id); p2.Y != 9 {
		t.Errorf("in-place update lost, Y=%v", p2.Y)
	}

	// 同类型替换
	em.AddComponent(id, &visual{URL: "builtin:coin"})
	if v, _ := GetComponent[*visual](em, id); v.URL != "builtin:coin" {
		t.Errorf("replaced component URL = %s", v.URL)
	}

	// 值类型与指针类型是不同的组件
	if HasComponent[visual](em, id) {
		t.Error("value type should not match pointer component")
	}

	// 不存在的实体
	em.AddComponent(99, &visual{})
	if HasComponent[*visual](em, 99) || em.Exists(99) {
		t.Error("AddComponent must not create entities")
	}
}

// TestQueryOrder 测试查询结果按创建顺序排列
func TestQueryOrder(t *testing.T) {
	em := NewEntityManager()
	var withBoth []EntityID
	for i := range 50 {
		id := em.CreateEntity()
		em.AddComponent(id, &visual{})
		if i%3 == 0 {
			em.AddComponent(id, &position{})
			withBoth = append(withBoth, id)
		}
	}

	if got := GetEntitiesWith1[*visual](em); len(got) != 50 || !slices.IsSorted(got) {
		t.Errorf("GetEntitiesWith1 returned %d ids, sorted=%v", len(got), slices.IsSorted(got))
	}
	if got := GetEntitiesWith2[*visual, *position](em); !slices.Equal(got, withBoth) {
		t.Errorf("GetEntitiesWith2 = %v, want %v", got, withBoth)
	}
	if got := GetEntitiesWith1[*position](NewEntityManager()); len(got) != 0 {
		t.Errorf("empty manager returned %v", got)
	}
}

func TestRemoval(t *testing.T) {
	tests := []struct {
		name   string
		remove func(t *testing.T, em *EntityManager, id EntityID)
	}{
		{"immediate", func(t *testing.T, em *EntityManager, id EntityID) {
			if !em.RemoveEntity(id) {
				t.Error("first RemoveEntity should return true")
			}
			if em.RemoveEntity(id) {
				t.Error("second RemoveEntity should return false")
			}
		}},
		{"deferred", func(t *testing.T, em *EntityManager, id EntityID) {
			em.DestroyEntity(id)
			if !em.Exists(id) {
				t.Error("DestroyEntity must not remove before RemoveMarkedEntities")
			}
			em.RemoveMarkedEntities()
			em.RemoveMarkedEntities()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := NewEntityManager()
			id := em.CreateEntity()
			keep := em.CreateEntity()
			em.AddComponent(id, &visual{})
			em.AddComponent(keep, &visual{})

			tt.remove(t, em, id)

			if em.Exists(id) || HasComponent[*visual](em, id) {
				t.Error("entity still present")
			}
			if got := GetEntitiesWith1[*visual](em); !slices.Equal(got, []EntityID{keep}) {
				t.Errorf("remaining = %v, want [%d]", got, keep)
			}
		})
	}
}
