package wrappers

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/samuelfneumann/goatari/environment"
	"github.com/samuelfneumann/goatari/utils/floatutils"
	"gorgonia.org/tensor"
)

// maxPixel is the largest value of a 16-bit colour channel
const maxPixel float64 = 0xffff

// Resize wraps an environment with observations of shape
// (height, width, channels) and resizes them to shape
// (Height, Width, channels) using bilinear interpolation. Greyscale
// (1 channel) and RGB (3 channel) observations are supported.
//
// Observations are quantised to 16 bits per channel between the
// bounds of the embedded Environment's observation spec while being
// resized.
type Resize struct {
	*observationWrapper
	Width, Height int
	channels      int
	low, high     float64
}

// NewResize returns a new Resize wrapping env which resizes
// observations to width x height. The channels argument must equal
// the number of channels of env's observations.
func NewResize(env environment.Environment, width, height,
	channels int) (*Resize, error) {
	spec := env.ObservationSpec()
	_, _, c, err := hwc(spec.Shape)
	if err != nil {
		return nil, environment.NewError("newResize", err)
	}
	if c != channels || (c != 1 && c != 3) {
		return nil, environment.NewError("newResize", fmt.Errorf("%w: "+
			"cannot resize %v channels to %v channels",
			environment.ErrChannels, c, channels))
	}
	if width < 1 || height < 1 {
		return nil, environment.NewError("newResize", fmt.Errorf("%w: "+
			"cannot resize to %v x %v", environment.ErrShape, width, height))
	}

	r := &Resize{
		Width:    width,
		Height:   height,
		channels: channels,
		low:      spec.LowerBound,
		high:     spec.UpperBound,
	}

	resizeSpec := environment.NewSpec(tensor.Shape{height, width, channels},
		environment.Observation, spec.LowerBound, spec.UpperBound,
		spec.Cardinality)
	r.observationWrapper = &observationWrapper{env, r.resize, resizeSpec}

	return r, nil
}

// resize resizes a single observation
func (r *Resize) resize(obs *tensor.Dense) (*tensor.Dense, error) {
	h, w, c, err := hwc(obs.Shape())
	if err != nil {
		return nil, err
	}
	if c != r.channels {
		return nil, fmt.Errorf("%w: expected %v channels, got %v",
			environment.ErrChannels, r.channels, c)
	}

	src := r.toImage(float64s(obs), w, h)
	dst := r.newImage(r.Width, r.Height)
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return tensor.New(tensor.WithShape(r.Height, r.Width, r.channels),
		tensor.WithBacking(r.fromImage(dst))), nil
}

func (r *Resize) newImage(w, h int) draw.Image {
	rect := image.Rect(0, 0, w, h)
	if r.channels == 1 {
		return image.NewGray16(rect)
	}
	return image.NewRGBA64(rect)
}

// quantise maps an observation value to a 16-bit colour channel
func (r *Resize) quantise(v float64) uint16 {
	if r.high == r.low {
		return 0
	}
	scaled := (v - r.low) / (r.high - r.low) * maxPixel
	return uint16(floatutils.Clip(scaled, 0, maxPixel) + 0.5)
}

// dequantise maps a 16-bit colour channel to an observation value
func (r *Resize) dequantise(v uint16) float64 {
	return r.low + float64(v)/maxPixel*(r.high-r.low)
}

// toImage converts the data of an observation of shape (h, w,
// channels) to an image
func (r *Resize) toImage(data []float64, w, h int) draw.Image {
	img := r.newImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * r.channels
			switch im := img.(type) {
			case *image.Gray16:
				im.SetGray16(x, y, color.Gray16{Y: r.quantise(data[i])})
			case *image.RGBA64:
				im.SetRGBA64(x, y, color.RGBA64{
					R: r.quantise(data[i]),
					G: r.quantise(data[i+1]),
					B: r.quantise(data[i+2]),
					A: 0xffff,
				})
			}
		}
	}
	return img
}

// fromImage converts an image to the data of an observation of shape
// (height, width, channels)
func (r *Resize) fromImage(img draw.Image) []float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]float64, 0, w*h*r.channels)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch im := img.(type) {
			case *image.Gray16:
				data = append(data, r.dequantise(im.Gray16At(x, y).Y))
			case *image.RGBA64:
				px := im.RGBA64At(x, y)
				data = append(data, r.dequantise(px.R), r.dequantise(px.G),
					r.dequantise(px.B))
			}
		}
	}
	return data
}

// String returns a string representation of the Resize environment
func (r *Resize) String() string {
	return fmt.Sprintf("Resize(%vx%vx%v)(%v)", r.Width, r.Height,
		r.channels, r.Environment)
}
