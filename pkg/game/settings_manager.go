// Package game 提供应用级的持久化设置
package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 全局设置
type Settings struct {
	// EffectEnabled 粒子效果开关
	EffectEnabled bool `yaml:"effectEnabled"`

	// Preset 喷发预设名称
	Preset string `yaml:"preset"`

	// Sprite 覆盖预设的精灵引用，为空时使用预设自带的精灵
	Sprite string `yaml:"sprite,omitempty"`

	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`

	// SoundEnabled 突发提示音开关
	SoundEnabled bool `yaml:"soundEnabled"`

	// SoundVolume 提示音音量 (0.0 ~ 1.0)
	SoundVolume float64 `yaml:"soundVolume"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		EffectEnabled: true,
		Preset:        "claim",
		Fullscreen:    false,
		SoundEnabled:  true,
		SoundVolume:   0.5,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，记录日志后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenSettingsManager 打开应用的 gdata 存储并创建设置管理器
// 存储不可用时降级为仅内存设置
func OpenSettingsManager(appName string) *SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	return NewSettingsManager(gdataManager)
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()

	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 旧文件缺少的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (effect=%v, preset=%s)", loaded.EffectEnabled, loaded.Preset)
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetEffectEnabled 设置粒子效果开关
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetEffectEnabled(enabled bool) {
	sm.settings.EffectEnabled = enabled
}

// SetPreset 设置喷发预设
func (sm *SettingsManager) SetPreset(name string) {
	sm.settings.Preset = name
}

// SetSprite 设置精灵覆盖
func (sm *SettingsManager) SetSprite(ref string) {
	sm.settings.Sprite = ref
}

// SetSoundEnabled 设置提示音开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置提示音音量，超出 [0, 1] 的值会被截断
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = min(max(volume, 0), 1)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
