//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// Makefile 的 prepare-mobile 目标负责把 assets/ 与 data/ 复制到此目录。
package mobile

import "embed"

//go:embed assets/sprites assets/sounds
var assetsFS embed.FS

//go:embed data/burst_presets.yaml
var dataFS embed.FS
