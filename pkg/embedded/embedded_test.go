package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/sprites/heart.png": {Data: []byte("png")},
		"assets/sprites/spark.png": {Data: []byte("png")},
	}
	data := fstest.MapFS{
		"data/burst_presets.yaml": {Data: []byte("presets: []\n")},
	}
	return assets, data
}

// TestNotInitialized 测试未初始化时的各个入口
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/burst_presets.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile err = %v", err)
	}
	if _, err := Glob("assets/*.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob err = %v", err)
	}
	if Exists("assets/sprites/heart.png") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFileByPrefix(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data/burst_presets.yaml", "presets: []\n", false},
		{"./data/burst_presets.yaml", "presets: []\n", false},
		{"assets/sprites/heart.png", "png", false},
		{"assets/sprites/missing.png", "", true},
		{"invalid/path.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGlobAndExists(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	matches, err := Glob("assets/sprites/*.png")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob = %v, want 2 files", matches)
	}
	if !Exists("assets/sprites/spark.png") || Exists("data/missing.yaml") {
		t.Error("Exists 结果不正确")
	}
	if _, err := Glob("invalid/*.txt"); err == nil {
		t.Error("Expected error for invalid path prefix")
	}
}
