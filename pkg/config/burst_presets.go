package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/coolmode/pkg/burst"
)

// BurstPresetsFile 内置预设文件路径
const BurstPresetsFile = "data/burst_presets.yaml"

// DefaultPresetName 未指定预设时使用
const DefaultPresetName = "default"

// BurstPresets 喷发预设集合
//
// 配置文件位置: data/burst_presets.yaml
type BurstPresets struct {
	Presets []BurstPreset `yaml:"presets"`
}

// BurstPreset 一个命名的喷发预设
type BurstPreset struct {
	// Name 预设名称，集合内唯一
	Name string `yaml:"name"`

	// Sprite 默认精灵引用（builtin:<name> 或图片路径）
	Sprite string `yaml:"sprite"`

	// 未填写的字段使用 burst 包的默认值
	burst.Options `yaml:",inline"`
}

// LoadBurstPresets 从文件加载预设
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *BurstPresets: 加载并验证后的预设
//   - error: 读取、解析或验证失败时返回错误
func LoadBurstPresets(path string) (*BurstPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read burst presets: %w", err)
	}
	return ParseBurstPresets(data)
}

// ParseBurstPresets 解析 YAML 格式的预设
func ParseBurstPresets(data []byte) (*BurstPresets, error) {
	var presets BurstPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse burst presets: %w", err)
	}

	if err := presets.Validate(); err != nil {
		return nil, fmt.Errorf("invalid burst presets: %w", err)
	}

	return &presets, nil
}

// Validate 验证预设有效性
//
// 引擎会钳制越界的数值，这里只拒绝明显写错的配置：
//   - 至少一个预设，名称非空且唯一
//   - minSpeed 不大于 maxSpeed
func (p *BurstPresets) Validate() error {
	if len(p.Presets) == 0 {
		return fmt.Errorf("no presets defined")
	}

	seen := make(map[string]bool, len(p.Presets))
	for i, preset := range p.Presets {
		if preset.Name == "" {
			return fmt.Errorf("preset #%d has no name", i)
		}
		if seen[preset.Name] {
			return fmt.Errorf("duplicate preset name '%s'", preset.Name)
		}
		seen[preset.Name] = true

		cfg := burst.Resolve(preset.Options)
		if cfg.MinSpeed > cfg.MaxSpeed {
			return fmt.Errorf("preset '%s': minSpeed(%.1f) > maxSpeed(%.1f)",
				preset.Name, cfg.MinSpeed, cfg.MaxSpeed)
		}
	}

	return nil
}

// Get 按名称查找预设
func (p *BurstPresets) Get(name string) (BurstPreset, bool) {
	for _, preset := range p.Presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return BurstPreset{}, false
}

// Names 返回按文件顺序排列的预设名称
func (p *BurstPresets) Names() []string {
	names := make([]string, 0, len(p.Presets))
	for _, preset := range p.Presets {
		names = append(names, preset.Name)
	}
	return names
}
