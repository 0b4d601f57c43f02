package main

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/decker502/coolmode/pkg/burst"
)

func newTestSim(t *testing.T, opts burst.Options) *Simulation {
	t.Helper()
	sim, err := NewSimulation(SimConfig{
		Options: opts,
		Sprite:  "builtin:coin",
		Seed:    7,
		Gesture: DefaultGesture(),
	})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return sim
}

// TestSimulation_RunToClose 测试完整手势后附着关闭且覆盖层释放
func TestSimulation_RunToClose(t *testing.T) {
	sim := newTestSim(t, burst.Options{
		MeanAngleDeg: burst.Float(-90), SpreadDeg: burst.Float(20),
		MinSpeed: burst.Float(12), MaxSpeed: burst.Float(18),
		Gravity: burst.Float(0.15), Drag: burst.Float(0.01),
	})

	summary, err := sim.Run(60*60, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	t.Logf("summary: %s", summary)

	if !summary.Closed || !summary.OverlayFreed {
		t.Fatalf("模拟结束时未关闭: %+v", summary)
	}
	if summary.TotalSpawned == 0 || summary.TotalSpawned != summary.TotalCulled {
		t.Errorf("spawned=%d culled=%d, 应全部落出", summary.TotalSpawned, summary.TotalCulled)
	}
	if summary.PeakLive > burst.DefaultMaxParticles {
		t.Errorf("peak=%d 超过上限", summary.PeakLive)
	}
	if summary.Bursts < 4 {
		t.Errorf("按住 2.4 秒应有多次突发, got %d", summary.Bursts)
	}
	if summary.ClosedAt < DefaultGesture().DetachAt {
		t.Errorf("ClosedAt=%v 早于拆除时间", summary.ClosedAt)
	}
}

// TestSimulation_Deterministic 测试相同种子得到相同结果
func TestSimulation_Deterministic(t *testing.T) {
	a, _ := newTestSim(t, burst.Options{}).Run(600, nil)
	b, _ := newTestSim(t, burst.Options{}).Run(600, nil)
	if a != b {
		t.Errorf("同一种子结果不同:\n%+v\n%+v", a, b)
	}
}

func TestSimulation_TraceCSV(t *testing.T) {
	sim := newTestSim(t, burst.Options{})
	var buf bytes.Buffer
	trace := NewTraceWriter(&buf)

	if _, err := sim.Run(120, trace.Write); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trace.Rows() != 120 {
		t.Fatalf("Rows = %d, want 120", trace.Rows())
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	if len(rows) != 121 {
		t.Fatalf("got %d csv rows, want header + 120", len(rows))
	}
	if rows[0][0] != "tick" || rows[0][len(rows[0])-1] != "burst_started" {
		t.Errorf("header = %v", rows[0])
	}

	liveCol := -1
	for i, h := range rows[0] {
		if h == "live" {
			liveCol = i
		}
	}
	if liveCol < 0 {
		t.Fatal("missing live column")
	}
	maxLive := 0
	for _, row := range rows[1:] {
		n, err := strconv.Atoi(row[liveCol])
		if err != nil {
			t.Fatalf("bad live value %q", row[liveCol])
		}
		maxLive = max(maxLive, n)
	}
	if maxLive == 0 {
		t.Error("trace 中没有存活粒子")
	}
}

func TestGesturePointer(t *testing.T) {
	sim := newTestSim(t, burst.Options{})
	g := DefaultGesture()

	if sim.pointer(0).Pressed {
		t.Error("按下前不应 pressed")
	}
	if !sim.pointer(g.PressAt).Pressed || sim.pointer(g.ReleaseAt).Pressed {
		t.Error("按下区间应为 [PressAt, ReleaseAt)")
	}

	centre := sim.Button.Bounds.X + sim.Button.Bounds.W/2
	quarter := sim.pointer(g.SwayPeriod / 4)
	if quarter.X <= centre || !sim.Button.Bounds.Contains(quarter.X, quarter.Y) {
		t.Errorf("四分之一周期应在按钮内偏右: x=%v", quarter.X)
	}
	if x := sim.pointer(3 * g.SwayPeriod / 4).X; x >= centre {
		t.Errorf("四分之三周期应偏左: x=%v", x)
	}
}

func TestUnknownSprite(t *testing.T) {
	_, err := NewSimulation(SimConfig{Sprite: "builtin:nope", Dt: time.Millisecond})
	if err == nil {
		t.Error("未知内置精灵应返回错误")
	}
}

func TestPopFrequency(t *testing.T) {
	if popFrequency(0) == popFrequency(1) || popFrequency(0) != popFrequency(2) {
		t.Error("音高应交替")
	}
}
