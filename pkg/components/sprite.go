package components

// SpriteComponent 存储覆盖层粒子的视觉表现
// 图像由渲染系统按 (URL, Size) 从精灵缓存中取得，组件本身只保存引用
type SpriteComponent struct {
	URL  string  // 已解析的精灵地址（builtin:xxx 或文件路径）
	Size float64 // 边长（像素），生成时确定后不再改变
}
