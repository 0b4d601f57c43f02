package sprite

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器

	"golang.org/x/image/draw"
)

// BuiltinPrefix 内置精灵的引用前缀
const BuiltinPrefix = "builtin:"

type scaledKey struct {
	url  string
	size int
}

// Cache 精灵图片缓存（并发安全）
//
// 原图按 URL 缓存，缩放图按 (URL, 边长) 缓存。粒子尺寸来自固定的
// 离散集合，因此缩放图的数量有上界。
type Cache struct {
	mu     sync.Mutex
	images map[string]image.Image
	scaled map[scaledKey]image.Image
	// ReadFile 读取图片文件，默认 os.ReadFile；测试或嵌入资源时可替换
	ReadFile func(path string) ([]byte, error)
}

// NewCache 创建缓存
func NewCache() *Cache {
	return &Cache{
		images:   make(map[string]image.Image),
		scaled:   make(map[scaledKey]image.Image),
		ReadFile: os.ReadFile,
	}
}

// Has 原图是否已缓存
func (c *Cache) Has(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.images[url]
	return ok
}

// Store 直接放入原图
func (c *Cache) Store(url string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[url] = img
}

// Load 取得原图，未缓存时加载
func (c *Cache) Load(url string) (image.Image, error) {
	c.mu.Lock()
	img, ok := c.images[url]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := c.decode(url)
	if err != nil {
		return nil, err
	}
	c.Store(url, img)
	return img, nil
}

func (c *Cache) decode(url string) (image.Image, error) {
	if name, ok := strings.CutPrefix(url, BuiltinPrefix); ok {
		return RenderBuiltin(name, builtinResolution)
	}

	data, err := c.ReadFile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite file: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite image: %w", err)
	}
	return img, nil
}

// Scaled 返回缩放到 size x size 的图片
func (c *Cache) Scaled(url string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid sprite size %d", size)
	}
	key := scaledKey{url: url, size: size}

	c.mu.Lock()
	img, ok := c.scaled[key]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	src, err := c.Load(url)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	c.mu.Lock()
	c.scaled[key] = dst
	c.mu.Unlock()
	return dst, nil
}
