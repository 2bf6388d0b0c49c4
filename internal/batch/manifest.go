package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"scroll-scene-renderer/internal/loop"
)

// Entry describes one rendered frame in the output manifest.
type Entry struct {
	Index     int        `json:"index"`
	Time      float64    `json:"time"`
	Section   int        `json:"section"`
	ScrollY   float64    `json:"scroll_y"`
	CameraY   float64    `json:"camera_y"`
	RigOffset [3]float64 `json:"rig_offset"`
	Image     string     `json:"image"`
}

// NewEntry captures the manifest fields of a frame.
func NewEntry(f loop.Frame) Entry {
	return Entry{
		Index:     f.Index,
		Time:      f.Time,
		Section:   f.Section,
		ScrollY:   f.ScrollY,
		CameraY:   f.CameraY,
		RigOffset: [3]float64(f.RigOffset),
		Image:     FrameFile(f.Index),
	}
}

// WriteManifest writes the entries of successful results to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		if r.Success {
			entries = append(entries, r.Entry)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
