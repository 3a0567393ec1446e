package sim

import (
	"math"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/gather"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

const (
	// RingSize is the number of frames kept per tracked process.
	RingSize = 1024
	// DefaultFPS is the presentation rate of generated frames.
	DefaultFPS = 60.0
	// SwapChainAddress is reported for every generated frame.
	SwapChainAddress uint64 = 0x1d7f0a3c000

	qpcFrequency = 10_000_000
)

// frame is one generated record and the provider time it was presented at.
type frame struct {
	seq    uint64
	at     time.Time
	record *gather.FrameRecord
}

// stream generates and buffers the frames of one tracked process.
type stream struct {
	pid     uint32
	name    string
	start   time.Time
	next    time.Time
	seq     uint64
	ring    []frame
	head    int
	count   int
	fps     float64
	layout  *gather.Layout
	cursors map[pm.QueryHandle]uint64
}

func newStream(pid uint32, name string, now time.Time, fps float64, layout *gather.Layout) *stream {
	return &stream{
		pid:     pid,
		name:    name,
		start:   now,
		next:    now,
		fps:     fps,
		ring:    make([]frame, RingSize),
		layout:  layout,
		cursors: make(map[pm.QueryHandle]uint64),
	}
}

// catchUp generates every frame due at or before now. After a long idle
// period only the most recent RingSize frames are generated.
func (s *stream) catchUp(now time.Time) {
	interval := time.Duration(float64(time.Second) / s.fps)
	if behind := now.Sub(s.next); behind > interval*RingSize {
		skipped := uint64(behind/interval) - RingSize
		s.seq += skipped
		s.next = s.next.Add(time.Duration(skipped) * interval)
	}
	for !s.next.After(now) {
		s.push(s.next)
		s.next = s.next.Add(interval)
	}
}

// produce appends n frames spaced at the stream rate regardless of time.
func (s *stream) produce(n int) {
	interval := time.Duration(float64(time.Second) / s.fps)
	for i := 0; i < n; i++ {
		s.push(s.next)
		s.next = s.next.Add(interval)
	}
}

func (s *stream) push(at time.Time) {
	s.seq++
	f := frame{seq: s.seq, at: at, record: s.synthesize(s.seq, at)}
	idx := (s.head + s.count) % RingSize
	if s.count == RingSize {
		s.head = (s.head + 1) % RingSize
	} else {
		s.count++
	}
	s.ring[idx] = f
}

// frames returns buffered frames with seq greater than after, oldest first.
func (s *stream) frames(after uint64) []frame {
	var out []frame
	for i := 0; i < s.count; i++ {
		f := s.ring[(s.head+i)%RingSize]
		if f.seq > after {
			out = append(out, f)
		}
	}
	return out
}

// window returns the frames presented in [from, to].
func (s *stream) window(from, to time.Time) []frame {
	var out []frame
	for i := 0; i < s.count; i++ {
		f := s.ring[(s.head+i)%RingSize]
		if !f.at.Before(from) && !f.at.After(to) {
			out = append(out, f)
		}
	}
	return out
}

func wave(i uint64, period, amplitude float64) float64 {
	return amplitude * math.Sin(float64(i)*2*math.Pi/period)
}

// synthesize builds a deterministic frame record for sequence number i.
func (s *stream) synthesize(i uint64, at time.Time) *gather.FrameRecord {
	r := gather.NewFrameRecord(s.layout)
	elapsed := at.Sub(s.start)
	frameMs := 1000 / s.fps * (1 + wave(i, 37, 0.05))
	cpuBusy := frameMs * 0.6
	gpuTime := frameMs * 0.8
	gpuBusy := gpuTime * 0.9
	displayLatency := frameMs * 1.5

	set := func(m pm.Metric, v bridge.Value) { _ = r.Set(m, 0, v) }
	set(pm.MetricApplication, bridge.String(s.name))
	set(pm.MetricSwapChainAddress, bridge.Uint64(SwapChainAddress))
	set(pm.MetricCPUFrameQPC, bridge.Uint64(uint64(elapsed.Seconds()*qpcFrequency)))
	set(pm.MetricTime, bridge.Float64(elapsed.Seconds()))
	set(pm.MetricPresentRuntime, bridge.EnumValue(pm.EnumGraphicsRuntime, int32(pm.GraphicsRuntimeDXGI)))
	set(pm.MetricSyncInterval, bridge.Int32(0))
	set(pm.MetricPresentFlags, bridge.Uint32(0x200))
	set(pm.MetricPresentMode, bridge.EnumValue(pm.EnumPresentMode, int32(pm.PresentModeHardwareIndependentFlip)))
	set(pm.MetricAllowsTearing, bridge.Bool(true))
	set(pm.MetricDroppedFrames, bridge.Bool(i%97 == 0))
	set(pm.MetricFrameTime, bridge.Float64(frameMs))
	set(pm.MetricCPUBusy, bridge.Float64(cpuBusy))
	set(pm.MetricCPUWait, bridge.Float64(frameMs-cpuBusy))
	set(pm.MetricGPULatency, bridge.Float64(frameMs*0.3))
	set(pm.MetricGPUTime, bridge.Float64(gpuTime))
	set(pm.MetricGPUBusy, bridge.Float64(gpuBusy))
	set(pm.MetricGPUWait, bridge.Float64(gpuTime-gpuBusy))
	set(pm.MetricDisplayLatency, bridge.Float64(displayLatency))
	set(pm.MetricDisplayedTime, bridge.Float64(frameMs))
	set(pm.MetricClickToPhotonLatency, bridge.Float64(displayLatency+4.2))
	set(pm.MetricGPUPower, bridge.Float64(150+wave(i, 240, 25)))
	set(pm.MetricGPUVoltage, bridge.Float64(1.05+wave(i, 240, 0.02)))
	set(pm.MetricGPUFrequency, bridge.Float64(2100+wave(i, 120, 50)))
	set(pm.MetricGPUTemperature, bridge.Float64(65+wave(i, 600, 3)))
	_ = r.Set(pm.MetricGPUFanSpeed, 0, bridge.Float64(1500+wave(i, 600, 60)))
	_ = r.Set(pm.MetricGPUFanSpeed, 1, bridge.Float64(1450+wave(i, 600, 60)))
	set(pm.MetricGPUUtilization, bridge.Float64(85+wave(i, 90, 10)))
	set(pm.MetricGPURenderComputeUtilization, bridge.Float64(80+wave(i, 90, 10)))
	set(pm.MetricGPUMediaUtilization, bridge.Float64(3))
	set(pm.MetricGPUPowerLimited, bridge.Bool(i%50 < 5))
	set(pm.MetricGPUTemperatureLimited, bridge.Bool(false))
	set(pm.MetricGPUMemPower, bridge.Float64(20+wave(i, 240, 2)))
	set(pm.MetricGPUMemFrequency, bridge.Float64(2000))
	set(pm.MetricGPUMemTemperature, bridge.Float64(70+wave(i, 600, 2)))
	set(pm.MetricGPUMemUsed, bridge.Uint64(6<<30+(i%1024)<<20))
	set(pm.MetricGPUMemUtilization, bridge.Float64(40+wave(i, 300, 5)))
	set(pm.MetricCPUUtilization, bridge.Float64(35+wave(i, 180, 10)))
	set(pm.MetricCPUPower, bridge.Float64(95+wave(i, 180, 15)))
	set(pm.MetricCPUTemperature, bridge.Float64(60+wave(i, 600, 4)))
	set(pm.MetricCPUFrequency, bridge.Float64(5200+wave(i, 120, 100)))
	return r
}
