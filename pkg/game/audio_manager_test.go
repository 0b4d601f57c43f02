package game

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// makeWAV 生成 16 位单声道 PCM 的最小 WAV 文件
func makeWAV(t *testing.T, sampleRate, samples int) []byte {
	t.Helper()
	var buf bytes.Buffer
	dataSize := uint32(samples * 2)
	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}
	buf.WriteString("RIFF")
	write(36 + dataSize)
	buf.WriteString("WAVEfmt ")
	write(uint32(16))
	write(uint16(1)) // PCM
	write(uint16(1)) // mono
	write(uint32(sampleRate))
	write(uint32(sampleRate * 2))
	write(uint16(2))
	write(uint16(16))
	buf.WriteString("data")
	write(dataSize)
	for i := 0; i < samples; i++ {
		write(int16(i * 64))
	}
	return buf.Bytes()
}

// TestAudioManagerLoadSound 测试 WAV 解码为 16 位立体声 PCM
func TestAudioManagerLoadSound(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if err := am.LoadSound(SoundPop, makeWAV(t, DefaultSampleRate, 441)); err != nil {
		t.Fatalf("LoadSound: %v", err)
	}
	if !am.HasSound(SoundPop) {
		t.Fatal("sound not cached")
	}
	// 单声道扩展为立体声：每个采样 4 字节
	if got := len(am.sounds[SoundPop]); got != 441*4 {
		t.Errorf("PCM length = %d, want %d", got, 441*4)
	}
}

func TestAudioManagerLoadSoundInvalid(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if err := am.LoadSound("broken", []byte("not a wav file")); err == nil {
		t.Error("LoadSound should reject invalid data")
	}
	if am.HasSound("broken") {
		t.Error("invalid sound should not be cached")
	}
}

// TestAudioManagerPlaySoundDegraded 测试无音频上下文或已禁用时不播放
func TestAudioManagerPlaySoundDegraded(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)
	if err := am.LoadSound(SoundPop, makeWAV(t, DefaultSampleRate, 64)); err != nil {
		t.Fatalf("LoadSound: %v", err)
	}

	if am.PlaySound(SoundPop) {
		t.Error("PlaySound without context should return false")
	}
	sm.SetSoundEnabled(false)
	if am.PlaySound(SoundPop) {
		t.Error("PlaySound with sound disabled should return false")
	}
	if am.PlaySound("missing") {
		t.Error("PlaySound of unknown sound should return false")
	}
	am.Close()
}

func TestAudioManagerVolume(t *testing.T) {
	if v := NewAudioManager(nil, nil).GetSoundVolume(); v != 0.5 {
		t.Errorf("default volume = %v, want 0.5", v)
	}
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.8)
	if v := NewAudioManager(nil, sm).GetSoundVolume(); v != 0.8 {
		t.Errorf("volume = %v, want 0.8", v)
	}
}
