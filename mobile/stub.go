//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 桌面端由根目录 main.go 启动；mobile.go 与 embed.go 只在 -tags mobile
// 时编译，此文件保证 go build ./... 与 go test ./... 不会因空包失败。
package mobile

// Dummy 空导出函数，桌面端构建时包内唯一的符号
func Dummy() {}
