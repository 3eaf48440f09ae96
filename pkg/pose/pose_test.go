package pose

import (
	"math"
	"sync"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	if got := DefaultWeights().Sum(); got != 1.0 {
		t.Errorf("Expected weights to sum to exactly 1.0, got %v", got)
	}
}

func TestBlendBoundedFields(t *testing.T) {
	base := Pose{MouthOpen: 1.0}
	emotion := Pose{MouthOpen: 0.5}
	lipsync := Pose{MouthOpen: 0.25}
	gesture := Pose{MouthOpen: 0.0}

	got := Blend(base, emotion, lipsync, gesture, DefaultWeights())

	// 0.3·1.0 + 0.4·0.5 + 0.2·0.25 + 0.1·0.0 = 0.55
	if math.Abs(got.MouthOpen-0.55) > 1e-9 {
		t.Errorf("Expected blended mouthOpen 0.55, got %f", got.MouthOpen)
	}
}

func TestBlendClampsNotRenormalizes(t *testing.T) {
	// A single layer spike can saturate the result but never push it past 1.
	spike := Pose{EyeOpenness: 1.0, MouthSmile: 1.0}
	got := Blend(spike, spike, spike, spike, Weights{Base: 1, Emotion: 1, Lipsync: 1, Gesture: 1})

	if got.EyeOpenness != 1.0 {
		t.Errorf("Expected saturation at 1.0, got %f", got.EyeOpenness)
	}
}

func TestBlendAngleNormalization(t *testing.T) {
	base := Pose{HeadRotation: 170}
	gesture := Pose{HeadRotation: 170}

	// 170·0.5 + 170·0.5 = 170; push further with asymmetric weights.
	got := Blend(base, Pose{HeadRotation: 500}, Pose{}, gesture,
		Weights{Base: 0.5, Emotion: 0.4, Lipsync: 0, Gesture: 0.1})

	if got.HeadRotation <= -180 || got.HeadRotation > 180 {
		t.Errorf("Expected angle wrapped into (-180,180], got %f", got.HeadRotation)
	}
}

func TestLayersSnapshotConsistency(t *testing.T) {
	ls := NewLayers()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Writers hammer two layers with internally consistent poses.
	for _, l := range []Layer{LayerEmotion, LayerLipsync} {
		wg.Add(1)
		go func(l Layer) {
			defer wg.Done()
			v := 0.0
			for {
				select {
				case <-stop:
					return
				default:
				}
				v = math.Mod(v+0.01, 1)
				ls.Set(l, Pose{MouthOpen: v, MouthSmile: v})
			}
		}(l)
	}

	for i := 0; i < 1000; i++ {
		_, emotion, lipsync, _ := ls.Snapshot()
		if emotion.MouthOpen != emotion.MouthSmile {
			t.Fatalf("Torn emotion pose observed: %+v", emotion)
		}
		if lipsync.MouthOpen != lipsync.MouthSmile {
			t.Fatalf("Torn lipsync pose observed: %+v", lipsync)
		}
	}

	close(stop)
	wg.Wait()
}

func TestLayerString(t *testing.T) {
	cases := map[Layer]string{
		LayerBase: "base", LayerEmotion: "emotion",
		LayerLipsync: "lipsync", LayerGesture: "gesture",
		Layer(99): "unknown",
	}
	for l, want := range cases {
		if got := l.String(); got != want {
			t.Errorf("Layer(%d).String() = %q, want %q", l, got, want)
		}
	}
}
