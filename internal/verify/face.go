package verify

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // common photo encodings
	_ "image/png"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// FaceDetector runs a classical cascade detector over uploaded photos and
// reports whether at least one face-like region is present. It performs no
// identity matching against a reference photo.
type FaceDetector struct {
	classifier   *pigo.Pigo
	scaleFactor  float64
	minNeighbors int
}

// NewFaceDetector unpacks a pigo cascade model. scaleFactor (>1) is the step
// between detection scales; minNeighbors (>=1) is the minimum number of
// overlapping raw detections required before a region is accepted.
func NewFaceDetector(cascade []byte, scaleFactor float64, minNeighbors int) (*FaceDetector, error) {
	if scaleFactor <= 1 {
		return nil, fmt.Errorf("scale factor must be greater than 1, got %v", scaleFactor)
	}
	if minNeighbors < 1 {
		return nil, fmt.Errorf("min neighbors must be at least 1, got %d", minNeighbors)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade model: %w", err)
	}

	return &FaceDetector{
		classifier:   classifier,
		scaleFactor:  scaleFactor,
		minNeighbors: minNeighbors,
	}, nil
}

// NewFaceDetectorFromFile loads the cascade model from disk.
func NewFaceDetectorFromFile(path string, scaleFactor float64, minNeighbors int) (*FaceDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade model: %w", err)
	}
	return NewFaceDetector(cascade, scaleFactor, minNeighbors)
}

// HasFace reports whether the image contains at least one detectable face
// region. Missing or undecodable bytes yield false.
func (d *FaceDetector) HasFace(img []byte) bool {
	if len(img) == 0 {
		return false
	}

	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return false
	}

	bounds := src.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	if rows < 20 || cols < 20 {
		return false
	}

	maxSize := rows
	if cols < rows {
		maxSize = cols
	}

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: d.scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	return len(groupDetections(detections, d.minNeighbors)) > 0
}

// groupDetections merges overlapping raw detections and keeps groups with at
// least minNeighbors members, mirroring how OpenCV's detectMultiScale treats
// its minNeighbors parameter.
func groupDetections(detections []pigo.Detection, minNeighbors int) []pigo.Detection {
	var groups [][]pigo.Detection
	for _, det := range detections {
		placed := false
		for i := range groups {
			if overlap(groups[i][0], det) >= 0.3 {
				groups[i] = append(groups[i], det)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []pigo.Detection{det})
		}
	}

	var accepted []pigo.Detection
	for _, group := range groups {
		if len(group) >= minNeighbors {
			accepted = append(accepted, group[0])
		}
	}
	return accepted
}

// overlap computes intersection-over-union of the square regions of two
// detections.
func overlap(a, b pigo.Detection) float64 {
	ax0, ay0, ax1, ay1 := rect(a)
	bx0, by0, bx1, by1 := rect(b)

	ix := min(ax1, bx1) - max(ax0, bx0)
	iy := min(ay1, by1) - max(ay0, by0)
	if ix <= 0 || iy <= 0 {
		return 0
	}

	intersection := float64(ix) * float64(iy)
	areaA := float64(ax1-ax0) * float64(ay1-ay0)
	areaB := float64(bx1-bx0) * float64(by1-by0)
	return intersection / (areaA + areaB - intersection)
}

func rect(d pigo.Detection) (x0, y0, x1, y1 int) {
	half := d.Scale / 2
	return d.Col - half, d.Row - half, d.Col + half, d.Row + half
}
