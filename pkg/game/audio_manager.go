package game

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate 音频上下文采样率
const DefaultSampleRate = 44100

// SoundPop 突发提示音的资源ID
const SoundPop = "pop"

// maxVoices 同时播放的提示音上限，超出时跳过
const maxVoices = 8

// AudioManager 音频管理器
// 职责：
//   - 持有解码后的 PCM 数据（资源ID -> 16 位立体声字节）
//   - 按 SettingsManager 的开关与音量播放
//
// 提示音很短且可能重叠，每次播放都从同一份 PCM 新建播放器。
type AudioManager struct {
	context         *audio.Context   // 可为 nil（降级模式，不出声）
	settingsManager *SettingsManager // 可为 nil，使用默认音量
	sampleRate      int
	sounds          map[string][]byte
	voices          []*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取开关与音量，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	rate := DefaultSampleRate
	if ctx != nil {
		rate = ctx.SampleRate()
	}
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		sampleRate:      rate,
		sounds:          make(map[string][]byte),
	}
}

// OpenAudioContext 返回当前进程的音频上下文
// ebiten 每个进程只允许创建一个 Context
func OpenAudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(DefaultSampleRate)
}

// LoadSound 解码 WAV 数据并以 soundID 缓存
// 采样率与音频上下文不一致时自动重采样
func (am *AudioManager) LoadSound(soundID string, data []byte) error {
	stream, err := wav.DecodeWithSampleRate(am.sampleRate, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode sound %s: %w", soundID, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("failed to read sound %s: %w", soundID, err)
	}
	am.sounds[soundID] = pcm
	log.Printf("[AudioManager] Loaded sound %s (%d bytes PCM)", soundID, len(pcm))
	return nil
}

// HasSound 检查音效是否已加载
func (am *AudioManager) HasSound(soundID string) bool {
	_, ok := am.sounds[soundID]
	return ok
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放（已禁用、降级模式、未加载或声部已满时返回 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	if am.context == nil {
		return false
	}
	pcm, ok := am.sounds[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}

	am.reapVoices()
	if len(am.voices) >= maxVoices {
		return false
	}

	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.GetSoundVolume())
	player.Play()
	am.voices = append(am.voices, player)
	return true
}

// reapVoices 关闭已播放完的播放器
func (am *AudioManager) reapVoices() {
	kept := am.voices[:0]
	for _, p := range am.voices {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
	}
	clear(am.voices[len(kept):])
	am.voices = kept
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.5 // 默认值
}

// Close 停止并释放所有播放器
func (am *AudioManager) Close() {
	for _, p := range am.voices {
		p.Pause()
		_ = p.Close()
	}
	am.voices = nil
}
