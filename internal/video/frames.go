package video

import (
	"errors"
	"image"
	"io"
)

// FrameReader splits a raw rgb24 stream into fixed-size frames.
type FrameReader struct {
	r      io.Reader
	width  int
	height int
	buf    []byte
}

func NewFrameReader(r io.Reader, width, height int) *FrameReader {
	return &FrameReader{
		r:      r,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*3),
	}
}

// Read returns io.EOF at a clean frame boundary. A trailing partial
// frame is dropped and also reported as io.EOF.
func (f *FrameReader) Read() (*image.RGBA, error) {
	if err := f.fill(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for src, dst := 0, 0; src < len(f.buf); src, dst = src+3, dst+4 {
		img.Pix[dst] = f.buf[src]
		img.Pix[dst+1] = f.buf[src+1]
		img.Pix[dst+2] = f.buf[src+2]
		img.Pix[dst+3] = 0xff
	}
	return img, nil
}

// Skip consumes one frame into the reused buffer.
func (f *FrameReader) Skip() error {
	return f.fill()
}

func (f *FrameReader) fill() error {
	if _, err := io.ReadFull(f.r, f.buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}
		return err
	}
	return nil
}
