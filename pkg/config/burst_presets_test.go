package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/coolmode/pkg/burst"
)

func TestParseBurstPresets(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *BurstPresets)
	}{
		{
			name: "valid presets",
			yamlContent: `
presets:
  - name: default
    sprite: builtin:star
  - name: claim
    sprite: builtin:coin
    meanAngleDeg: -90
    spreadDeg: 20
    gravity: 0.15
    burstCount: 30
    mirrorByMouseDirection: false
`,
			validate: func(t *testing.T, p *BurstPresets) {
				claim, ok := p.Get("claim")
				if !ok {
					t.Fatal("expected preset 'claim'")
				}
				if claim.Sprite != "builtin:coin" {
					t.Errorf("expected sprite builtin:coin, got %s", claim.Sprite)
				}
				cfg := burst.Resolve(claim.Options)
				if cfg.MeanAngleDeg != -90 || cfg.SpreadDeg != 20 || cfg.Physics.Gravity != 0.15 {
					t.Errorf("unexpected claim config: %+v", cfg)
				}
				if cfg.MirrorByMouseDirection {
					t.Error("expected mirrorByMouseDirection = false")
				}
				// 未填写的字段使用默认值
				if cfg.MaxParticles != burst.DefaultMaxParticles {
					t.Errorf("expected default maxParticles, got %d", cfg.MaxParticles)
				}

				def, _ := p.Get("default")
				if def.MeanAngleDeg != nil {
					t.Error("expected default preset to leave meanAngleDeg unset")
				}
			},
		},
		{
			name:        "empty file",
			yamlContent: `presets: []`,
			wantErr:     true,
			errContains: "no presets",
		},
		{
			name: "duplicate name",
			yamlContent: `
presets:
  - name: a
  - name: a
`,
			wantErr:     true,
			errContains: "duplicate",
		},
		{
			name: "missing name",
			yamlContent: `
presets:
  - sprite: builtin:star
`,
			wantErr:     true,
			errContains: "no name",
		},
		{
			name: "speed range inverted",
			yamlContent: `
presets:
  - name: broken
    minSpeed: 30
    maxSpeed: 10
`,
			wantErr:     true,
			errContains: "minSpeed",
		},
		{
			name:        "malformed yaml",
			yamlContent: "presets: [",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBurstPresets([]byte(tt.yamlContent))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBurstPresets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}

func TestLoadBurstPresets_FileNotFound(t *testing.T) {
	_, err := LoadBurstPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBurstPresets_TempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  - name: only\n    burstCount: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadBurstPresets(path)
	if err != nil {
		t.Fatalf("LoadBurstPresets: %v", err)
	}
	if names := p.Names(); len(names) != 1 || names[0] != "only" {
		t.Errorf("Names = %v", names)
	}
}

// TestLoadBurstPresets_ShippedFile 验证随程序发布的预设文件
func TestLoadBurstPresets_ShippedFile(t *testing.T) {
	path := filepath.Join("..", "..", BurstPresetsFile)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("preset file not found: %v", err)
	}

	p, err := LoadBurstPresets(path)
	if err != nil {
		t.Fatalf("LoadBurstPresets(%s): %v", path, err)
	}
	t.Logf("loaded presets: %v", p.Names())

	if _, ok := p.Get(DefaultPresetName); !ok {
		t.Errorf("shipped file must contain preset %q", DefaultPresetName)
	}

	claim, ok := p.Get("claim")
	if !ok {
		t.Fatal("shipped file must contain preset 'claim'")
	}
	cfg := burst.Resolve(claim.Options)
	want := burst.Config{
		MeanAngleDeg: -90, SpreadDeg: 20, MinSpeed: 12, MaxSpeed: 18,
		MirrorByMouseDirection: true,
		Physics: burst.Physics{Gravity: 0.15, Drag: 0.01, AlignWithVelocity: true, HeadingOffsetDeg: 90},
		BurstCount: 30, BurstIntervalSec: 0.5, BurstDurationSec: 0.18, BurstJitterSec: 0.03,
		MaxParticles: 220,
	}
	if cfg != want {
		t.Errorf("claim preset =\n%+v\nwant\n%+v", cfg, want)
	}
}
