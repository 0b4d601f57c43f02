package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const popSampleRate = beep.SampleRate(44100)

// popPlayer 每次突发播放一个短促的正弦音
type popPlayer struct {
	count int
}

func newPopPlayer() (*popPlayer, error) {
	if err := speaker.Init(popSampleRate, popSampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &popPlayer{}, nil
}

// popFrequency 交替使用两个音高，连续突发听起来有节奏
func popFrequency(n int) float64 {
	if n%2 == 0 {
		return 660
	}
	return 880
}

// Pop 播放一次
func (p *popPlayer) Pop() {
	if p == nil {
		return
	}
	sine, err := generators.SineTone(popSampleRate, popFrequency(p.count))
	if err != nil {
		return
	}
	p.count++

	speaker.Play(&effects.Gain{
		Streamer: beep.Take(popSampleRate.N(40*time.Millisecond), sine),
		Gain:     -0.8,
	})
}

func (p *popPlayer) Close() {
	if p == nil {
		return
	}
	speaker.Close()
}
