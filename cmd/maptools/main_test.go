package main

import (
	"testing"

	"noisekit/internal/heightmap"
)

func TestSummarize(t *testing.T) {
	hm := heightmap.NewWithValues(4, 3, []float32{
		0, 0, 0, 0,
		0, 1, 0.5, 0,
		0, 0, 0, 0,
	})
	s := summarize(hm, 0.35)

	if s.lo != 0 || s.hi != 1 {
		t.Errorf("range = [%v, %v]", s.lo, s.hi)
	}
	if s.land != 2 {
		t.Errorf("land = %d, want 2", s.land)
	}
	if !s.island {
		t.Error("centre land not reported as island")
	}
	if s.histogram[0] != 10 || s.histogram[5] != 1 || s.histogram[9] != 1 {
		t.Errorf("histogram = %v", s.histogram)
	}
}

func TestSummarizeFlat(t *testing.T) {
	hm := heightmap.New(3, 3)
	hm.AddScalar(0.5)
	s := summarize(hm, 0.5)
	if s.histogram[0] != 9 || s.land != 0 || s.meanSlope != 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestResample(t *testing.T) {
	hm := heightmap.New(100, 50)
	hm.SetValue(50, 20, 1)

	out := resample(hm, 10)
	if out.Width() != 10 || out.Height() != 5 {
		t.Fatalf("size %dx%d, want 10x5", out.Width(), out.Height())
	}
	if got := out.Value(5, 2); got != 1 {
		t.Errorf("sampled (5, 2) = %v, want 1", got)
	}
	if tiny := resample(heightmap.New(8, 1), 4); tiny.Height() != 1 {
		t.Errorf("height = %d, want 1", tiny.Height())
	}
}
