// Package bmp writes rasters as uncompressed 24-bit Windows bitmaps.
//
// Layout (all integers little-endian):
//
//	offset size  field
//	     0    2  "BM"
//	     2    4  file size
//	     6    4  reserved (two zero uint16)
//	    10    4  pixel data offset (54)
//	    14    4  info header size (40)
//	    18    4  width  (int32)
//	    22    4  height (int32, positive: rows stored bottom-up)
//	    26    2  color planes (1)
//	    28    2  bits per pixel (24)
//	    30    4  compression (0, BI_RGB)
//	    34    4  image size (0, allowed for BI_RGB)
//	    38   16  resolution, palette size, important colors (all 0)
//	    54    -  pixel rows, BGR, each padded with zeros to a multiple of 4
package bmp

import (
	"encoding/binary"
	"fmt"
	"io"

	"domcolor/pkg/render"
)

const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeaderSize     = FileHeaderSize + InfoHeaderSize
	bitsPerPixel   = 24
)

// RowStride is the padded byte length of one pixel row: ceil(3w/4)*4.
func RowStride(width int) int {
	return (3*width + 3) / 4 * 4
}

// FileSize is the total encoded size of a width x height bitmap.
func FileSize(width, height int) int {
	return HeaderSize + RowStride(width)*height
}

// Encode returns the complete bitmap file for r. Sampling row 0 is the first
// row stored, which a bottom-up bitmap displays at the bottom.
func Encode(r *render.Raster) ([]byte, error) {
	if err := render.ValidateDimensions(r.Width, r.Height); err != nil {
		return nil, err
	}
	size := FileSize(r.Width, r.Height)
	if int64(size) > int64(^uint32(0)) {
		return nil, fmt.Errorf("bmp: %dx%d image exceeds the 4 GiB format limit", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*3 {
		return nil, fmt.Errorf("bmp: raster has %d bytes, expected %d", len(r.Pix), r.Width*r.Height*3)
	}

	buf := make([]byte, size)
	putHeader(buf, r.Width, r.Height, size)

	stride := RowStride(r.Width)
	for y := 0; y < r.Height; y++ {
		src := r.Row(y)
		dst := buf[HeaderSize+y*stride:]
		for x := 0; x < r.Width; x++ {
			dst[x*3+0] = src[x*3+2] // B
			dst[x*3+1] = src[x*3+1] // G
			dst[x*3+2] = src[x*3+0] // R
		}
		// padding bytes are already zero
	}
	return buf, nil
}

// Write encodes r and writes it to w.
func Write(w io.Writer, r *render.Raster) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func putHeader(buf []byte, width, height, size int) {
	le := binary.LittleEndian

	// BITMAPFILEHEADER
	buf[0], buf[1] = 'B', 'M'
	le.PutUint32(buf[2:], uint32(size))
	le.PutUint16(buf[6:], 0)
	le.PutUint16(buf[8:], 0)
	le.PutUint32(buf[10:], HeaderSize)

	// BITMAPINFOHEADER
	le.PutUint32(buf[14:], InfoHeaderSize)
	le.PutUint32(buf[18:], uint32(int32(width)))
	le.PutUint32(buf[22:], uint32(int32(height)))
	le.PutUint16(buf[26:], 1)
	le.PutUint16(buf[28:], bitsPerPixel)
	le.PutUint32(buf[30:], 0) // BI_RGB
	le.PutUint32(buf[34:], 0) // image size
	// 38..53: resolution and palette fields stay zero
}
