package hal

// hostFramebuffer is an RGB565 pixel buffer, two bytes per pixel,
// little-endian.
type hostFramebuffer struct {
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}
